package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Scan runs one ingest pass on the daemon.
func (c *Client) Scan() (*ScanResponse, error) {
	var resp ScanResponse
	if err := c.client.Call("Sift.Scan", ScanRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pending fetches undecided photos.
func (c *Client) Pending(limit int) (*PendingResponse, error) {
	var resp PendingResponse
	if err := c.client.Call("Sift.Pending", PendingRequest{Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Swipe applies a triage decision to a photo.
func (c *Client) Swipe(photoID, decision string) (*SwipeResponse, error) {
	var resp SwipeResponse
	req := SwipeRequest{PhotoID: photoID, Decision: decision}
	if err := c.client.Call("Sift.Swipe", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Gallery fetches photos by status.
func (c *Client) Gallery(status string) (*GalleryResponse, error) {
	var resp GalleryResponse
	if err := c.client.Call("Sift.Gallery", GalleryRequest{Status: status}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Categories fetches the seeded category set.
func (c *Client) Categories() (*CategoriesResponse, error) {
	var resp CategoriesResponse
	if err := c.client.Call("Sift.Categories", CategoriesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Sift.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DatabaseHealth retrieves detailed database diagnostics.
func (c *Client) DatabaseHealth() (*DatabaseHealthResponse, error) {
	var resp DatabaseHealthResponse
	if err := c.client.Call("Sift.DatabaseHealth", DatabaseHealthRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests daemon shutdown.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Sift.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
