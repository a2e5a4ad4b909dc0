// Package mcpclient implements a client for the Model Context Protocol (MCP) over the
// streamable HTTP transport: JSON-RPC 2.0 requests are POSTed to a single endpoint, and
// replies arrive either as a plain JSON body or as a Server-Sent-Events framed body from
// which the final event is taken as the logical reply.
//
// The client tracks the server-issued session token across calls and exposes the three
// operations the protocol needs to drive remote tools: Initialize, ListTools, and
// CallTool. Everything above that, such as picking tools and interpreting their
// results, is left to the caller.
package mcpclient
