package ports

// TransportHandlers carries the callbacks a transport fires from its read
// loop. OnMessage receives one protocol line at a time, already stripped of
// line endings.
type TransportHandlers struct {
	OnOpen    func()
	OnMessage func(line string)
	OnClose   func(err error)
	OnFail    func(err error)
}

// Transport is a secure, message-framed streaming connection. Open dials and
// starts delivering inbound lines through the handlers until the connection
// ends; Send and Close are safe to call from any goroutine.
type Transport interface {
	Open(url string, h TransportHandlers) error
	Send(line string) error
	Close() error
}
