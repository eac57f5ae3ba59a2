// Package client is the Go client for the atlasbridge sidecar API.
//
// The host application posts a record's attributes and receives the
// related issues and wiki pages for it:
//
//	c, err := client.New("http://localhost:8080", client.WithAPIKey(key))
//	if err != nil {
//		return err
//	}
//
//	content, err := c.DeviceRelated(ctx, map[string]any{
//		"name":   "sw-core-01",
//		"serial": "FXS12345",
//	})
//
// Failed backend lookups never surface as errors here: the service
// reports them inside the result payload so a broken tracker cannot
// break the page that embeds it.
package client
