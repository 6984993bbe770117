package wsbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"inlretro/device"
)

const driverName = "wsbridge"

type Driver struct{}

func (d *Driver) DisplayName() string {
	return "Websocket bridge"
}

func (d *Driver) DisplayDescription() string {
	return "Connect to a programmer shared by `inlretro serve`; name is the ws:// URL"
}

func (d *Driver) Open(name string) (device.Transport, error) {
	if name == "" {
		name = DefaultURL
	}
	return Dial(context.Background(), name)
}

// Client is a Transport backed by a bridge server.
type Client struct {
	urlstr string

	ws      net.Conn
	r       *wsutil.Reader
	w       *wsutil.Writer
	encoder *json.Encoder
	decoder *json.Decoder
}

func Dial(ctx context.Context, urlstr string) (c *Client, err error) {
	c = &Client{urlstr: urlstr}
	log.Printf("wsbridge: dial %s\n", urlstr)
	c.ws, _, _, err = ws.Dial(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("wsbridge: dial: %w", err)
	}

	c.r = wsutil.NewClientSideReader(c.ws)
	c.w = wsutil.NewWriter(c.ws, ws.StateClientSide, ws.OpText)
	c.encoder = json.NewEncoder(c.w)
	c.decoder = json.NewDecoder(c.r)
	return c, nil
}

func (c *Client) Control(req uint8, value, index uint16, data []byte) (n int, err error) {
	if c.ws == nil {
		return 0, device.ErrDeviceDisconnected
	}

	err = c.encoder.Encode(&request{Request: req, Value: value, Index: index, Length: len(data)})
	if err != nil {
		return 0, fmt.Errorf("wsbridge: encode request: %w", err)
	}
	if err = c.w.Flush(); err != nil {
		return 0, fmt.Errorf("wsbridge: flush request: %w", err)
	}

	hdr, err := c.r.NextFrame()
	if err != nil {
		return 0, fmt.Errorf("wsbridge: error reading next websocket frame: %w", err)
	}
	if hdr.OpCode == ws.OpClose {
		_ = c.Close()
		return 0, fmt.Errorf("wsbridge: websocket closed: %w", device.ErrDeviceDisconnected)
	}

	var rsp response
	if err = c.decoder.Decode(&rsp); err != nil {
		return 0, fmt.Errorf("wsbridge: decode response: %w", err)
	}
	n = copy(data, rsp.Data)
	switch {
	case rsp.Gone:
		err = fmt.Errorf("wsbridge: %s: %w", rsp.Error, device.ErrDeviceDisconnected)
	case rsp.Error != "":
		err = errors.New("wsbridge: " + rsp.Error)
	}
	return
}

func (c *Client) Close() (err error) {
	if c.ws == nil {
		return nil
	}
	log.Printf("wsbridge: close %s\n", c.urlstr)
	err = c.ws.Close()
	c.ws = nil
	return
}

func init() {
	device.Register(driverName, &Driver{})
}
