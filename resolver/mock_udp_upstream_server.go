package resolver

import (
	"net"
	"sync/atomic"

	"github.com/miekg/dns"

	"github.com/odskit/ksk-helper/config"
	"github.com/odskit/ksk-helper/util"
)

// MockUDPUpstreamServer is an in-process DNS server answering over UDP on 127.0.0.1
type MockUDPUpstreamServer struct {
	callCount int32
	ln        *net.UDPConn
	answerFn  func(request *dns.Msg) (response *dns.Msg)
}

func NewMockUDPUpstreamServer() *MockUDPUpstreamServer {
	return &MockUDPUpstreamServer{}
}

// WithAnswerRR answers every request with the records, which are parsed in presentation format
func (t *MockUDPUpstreamServer) WithAnswerRR(answers ...string) *MockUDPUpstreamServer {
	t.answerFn = func(request *dns.Msg) (response *dns.Msg) {
		msg := new(dns.Msg)

		for _, a := range answers {
			rr, err := dns.NewRR(a)
			util.FatalOnError("can't create RR", err)

			msg.Answer = append(msg.Answer, rr)
		}

		return msg
	}

	return t
}

func (t *MockUDPUpstreamServer) WithAnswerError(errorCode int) *MockUDPUpstreamServer {
	t.answerFn = func(request *dns.Msg) (response *dns.Msg) {
		msg := new(dns.Msg)
		msg.Rcode = errorCode

		return msg
	}

	return t
}

func (t *MockUDPUpstreamServer) WithAnswerFn(fn func(request *dns.Msg) (response *dns.Msg)) *MockUDPUpstreamServer {
	t.answerFn = fn

	return t
}

func (t *MockUDPUpstreamServer) GetCallCount() int {
	return int(atomic.LoadInt32(&t.callCount))
}

func (t *MockUDPUpstreamServer) Close() {
	if t.ln != nil {
		_ = t.ln.Close()
	}
}

func createConnection() *net.UDPConn {
	a, err := net.ResolveUDPAddr("udp4", "127.0.0.1:0")
	util.FatalOnError("can't resolve address: ", err)

	ln, err := net.ListenUDP("udp4", a)
	util.FatalOnError("can't create connection: ", err)

	return ln
}

// Start listens on a random port and returns the server as upstream.
// A nil answer makes the server reply garbage.
func (t *MockUDPUpstreamServer) Start() config.Upstream {
	ln := createConnection()

	host, portString, err := net.SplitHostPort(ln.LocalAddr().String())
	util.FatalOnError("can't split address: ", err)

	port, err := config.ConvertPort(portString)
	util.FatalOnError("can't convert port: ", err)

	t.ln = ln

	go func() {
		const bufferSize = 1024

		for {
			buffer := make([]byte, bufferSize)

			n, addr, err := ln.ReadFromUDP(buffer)
			if err != nil {
				// closed
				break
			}

			msg := new(dns.Msg)
			err = msg.Unpack(buffer[:n])

			util.FatalOnError("can't deserialize message: ", err)

			response := t.answerFn(msg)

			atomic.AddInt32(&t.callCount, 1)

			if response == nil {
				_, _ = ln.WriteToUDP([]byte("dummy"), addr)

				continue
			}

			rCode := response.Rcode
			response.SetReply(msg)

			if rCode != 0 {
				response.Rcode = rCode
			}

			b, err := response.Pack()
			util.FatalOnError("can't serialize message: ", err)

			_, err = ln.WriteToUDP(b, addr)
			if err != nil {
				// closed
				break
			}
		}
	}()

	return config.Upstream{Host: host, Port: port}
}
