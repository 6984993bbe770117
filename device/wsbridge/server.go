package wsbridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"inlretro/device"
)

// Server shares one programmer with one websocket client at a time. The
// device is opened when a client connects and closed when it leaves.
type Server struct {
	open func() (device.Transport, error)
	busy chan struct{}
}

func NewServer(open func() (device.Transport, error)) *Server {
	return &Server{open: open, busy: make(chan struct{}, 1)}
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	select {
	case s.busy <- struct{}{}:
	default:
		http.Error(rw, "programmer is in use by another client", http.StatusConflict)
		return
	}
	defer func() { <-s.busy }()

	t, err := s.open()
	if err != nil {
		log.Printf("wsbridge: open device: %v\n", err)
		http.Error(rw, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer t.Close()

	conn, _, _, err := ws.UpgradeHTTP(req, rw)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	log.Printf("wsbridge: client %s connected\n", req.RemoteAddr)
	s.serve(conn, t)
	log.Printf("wsbridge: client %s disconnected\n", req.RemoteAddr)
}

func (s *Server) serve(conn net.Conn, t device.Transport) {
	var (
		r       = wsutil.NewReader(conn, ws.StateServerSide)
		decoder = json.NewDecoder(r)
		w       = wsutil.NewWriter(conn, ws.StateServerSide, ws.OpText)
		encoder = json.NewEncoder(w)
		buf     = make([]byte, maxLength)
	)

	for {
		hdr, err := r.NextFrame()
		if err != nil {
			log.Println(fmt.Errorf("wsbridge: error reading next websocket frame: %w", err))
			return
		}
		if hdr.OpCode == ws.OpClose {
			return
		}
		if hdr.OpCode != ws.OpText {
			if err = r.Discard(); err != nil {
				log.Println(fmt.Errorf("wsbridge: discard: %w", err))
				return
			}
			continue
		}

		var creq request
		if err = decoder.Decode(&creq); err != nil {
			log.Println(fmt.Errorf("wsbridge: error reading json request: %w", err))
			return
		}

		rsp := s.control(t, creq, buf)
		if err = encoder.Encode(&rsp); err != nil {
			log.Println(err)
			return
		}
		if err = w.Flush(); err != nil {
			log.Println(err)
			return
		}
	}
}

func (s *Server) control(t device.Transport, creq request, buf []byte) (rsp response) {
	if creq.Length <= 0 || creq.Length > len(buf) {
		rsp.Error = fmt.Sprintf("response length %d out of range 1..%d", creq.Length, len(buf))
		return
	}
	n, err := t.Control(creq.Request, creq.Value, creq.Index, buf[:creq.Length])
	if n > 0 {
		rsp.Data = buf[:n]
	}
	rsp.N = n
	if err != nil {
		rsp.Error = err.Error()
		rsp.Gone = errors.Is(err, device.ErrDeviceDisconnected)
	}
	return
}

// ListenAndServe serves the bridge at path on addr.
func ListenAndServe(addr, path string, s *Server) error {
	mux := http.NewServeMux()
	mux.Handle(path, s)
	log.Printf("wsbridge: listening on %s%s\n", addr, path)
	return http.ListenAndServe(addr, mux)
}
