package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tommeville/go-mcpclient/alpaca"
)

var (
	tradeSymbol string
	tradeQty    int
	tradeSide   string
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Place a single stock order in a fresh session",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := serverURL()
		if err != nil {
			return err
		}

		order := alpaca.Order{
			Symbol:   tradeSymbol,
			Side:     alpaca.Side(tradeSide),
			Quantity: tradeQty,
		}
		result, err := alpaca.ExecuteTrade(cmd.Context(), url, order, clientOptions()...)
		if err != nil {
			return err
		}

		fmt.Printf("\n[ORDER RESULT]\n%s\n", result)
		return nil
	},
}

func init() {
	tradeCmd.Flags().StringVar(&tradeSymbol, "symbol", "AAPL", "stock symbol to trade")
	tradeCmd.Flags().IntVar(&tradeQty, "qty", 1, "number of shares")
	tradeCmd.Flags().StringVar(&tradeSide, "side", "buy", "order side: buy or sell")
	rootCmd.AddCommand(tradeCmd)
}
