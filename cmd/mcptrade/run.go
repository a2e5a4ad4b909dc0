package main

import (
	"github.com/spf13/cobra"
	"github.com/tommeville/go-mcpclient"
	"github.com/tommeville/go-mcpclient/alpaca"
)

var (
	runSymbol string
	runQty    int
	runSide   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full flow: initialize, list tools, account, positions, order",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := serverURL()
		if err != nil {
			return err
		}

		client := mcpclient.NewClient(url, clientOptions()...)
		defer client.Close()

		order := alpaca.Order{
			Symbol:   runSymbol,
			Side:     alpaca.Side(runSide),
			Quantity: runQty,
		}
		return alpaca.NewExecutor(client).Run(cmd.Context(), order)
	},
}

func init() {
	runCmd.Flags().StringVar(&runSymbol, "symbol", "AAPL", "stock symbol to trade")
	runCmd.Flags().IntVar(&runQty, "qty", 1, "number of shares")
	runCmd.Flags().StringVar(&runSide, "side", "buy", "order side: buy or sell")
	rootCmd.AddCommand(runCmd)
}
