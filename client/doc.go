// Package client talks to a logtable HTTP server.
//
// A Client satisfies sink.Writer, so a process without database access can ship
// its logs to a remote server:
//
//	c, err := client.New(&client.Config{Endpoint: "http://logs:5709", Token: token})
//	if err != nil {
//	    return err
//	}
//	logger := slog.New(sink.NewSlogHandler(c, nil))
//
// Server errors are returned as *APIError values; compare them with errors.Is
// against ErrBadRequest, ErrUnauthorized and ErrUnavailable.
package client
