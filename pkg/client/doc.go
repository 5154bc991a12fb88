// Package client is the Premium API facade.
//
// A Client is bound to one API key and campaign code. It picks a transport
// tier once, at construction, and runs every call through the same steps:
// attachment checks, request encoding, one exchange with the backend, and
// interpretation of the JSON reply.
//
// # Usage
//
//	c, err := client.New(client.Config{APIKey: "key", CampaignCode: "test"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	info, err := c.InfoGet(ctx)
//	if err != nil {
//	    // err is an *apierr.Error; c.LastErrorCode() holds the same code
//	}
//
// # Error state
//
// Every call resets the client's error slot and then records its outcome
// there. The slot carries no call identity, so read it right after the
// call. The same outcome is also returned as the call's error.
//
// A Client is not safe for concurrent use. Give each goroutine its own
// Client or serialize calls.
package client
