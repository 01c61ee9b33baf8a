package hooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"

	"github.com/AnatoleLucet/hooks/codec"
	"github.com/AnatoleLucet/hooks/internal"
	"github.com/AnatoleLucet/hooks/statuscode"
	"github.com/AnatoleLucet/hooks/transport"
)

type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// FetchError describes why a fetch ended in the error state.
// StatusCode is zero when no response was received.
type FetchError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type FetchState[T any] struct {
	Status Status
	Data   T
	Err    *FetchError
}

type FetchOption func(*fetchConfig)

type fetchConfig struct {
	logErrors bool
	sink      func(string)
	describe  statuscode.Describer
	decoder   codec.Codec
	request   transport.Request
}

// WithLogErrors turns the reporting of fetch errors to the sink on or off. On by default.
func WithLogErrors(enabled bool) FetchOption {
	return func(c *fetchConfig) { c.logErrors = enabled }
}

// WithSink sets where fetch errors are reported. glog.Error by default.
func WithSink(sink func(message string)) FetchOption {
	return func(c *fetchConfig) { c.sink = sink }
}

// WithDescriber sets how status codes of failed responses are described.
func WithDescriber(describe statuscode.Describer) FetchOption {
	return func(c *fetchConfig) { c.describe = describe }
}

// WithDecoder sets the codec used to decode response bodies. JSON by default.
func WithDecoder(decoder codec.Codec) FetchOption {
	return func(c *fetchConfig) { c.decoder = decoder }
}

// WithRequest sets the request options UseFetch sends with every request.
func WithRequest(req transport.Request) FetchOption {
	return func(c *fetchConfig) { c.request = req }
}

// Fetch holds the state of the last request it initiated.
//
// Requests run on their own goroutine. Their result is applied on the goroutine
// that created the fetch, by Poll or Settle, and only if no other request was
// initiated in the meantime.
type Fetch[T any] struct {
	r *internal.Runtime

	transport transport.Transport
	cfg       fetchConfig

	state *Cell[FetchState[T]]

	// identifies the live request, zero when there is none
	token  ulid.ULID
	cancel context.CancelFunc

	resource string
	req      transport.Request
}

// NewFetch creates an idle fetch, pending until Initiate is called and its request completes.
// The live request is cancelled when the current owner is disposed.
func NewFetch[T any](t transport.Transport, opts ...FetchOption) *Fetch[T] {
	cfg := fetchConfig{
		logErrors: true,
		sink:      func(msg string) { glog.Error(msg) },
		describe:  statuscode.Describe,
		decoder:   codec.JSON{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &Fetch[T]{
		r:         internal.GetRuntime(),
		transport: t,
		cfg:       cfg,
		state:     NewCell(FetchState[T]{Status: StatusPending}),
	}

	f.r.OnCleanup(f.Cancel)

	return f
}

// UseFetch fetches the resource held by resource, and fetches again every time it changes.
func UseFetch[T any](t transport.Transport, resource Reader[string], opts ...FetchOption) *Fetch[T] {
	f := NewFetch[T](t, opts...)

	NewEffect(func() {
		f.Initiate(resource.Read(), f.cfg.request)
	})

	return f
}

// Initiate cancels the live request, if any, resets the state to pending and sends a new request.
func (f *Fetch[T]) Initiate(resource string, req transport.Request) {
	f.Cancel()

	ctx, cancel := context.WithCancel(context.Background())
	token := ulid.Make()

	f.token = token
	f.cancel = cancel
	f.resource = resource
	f.req = req

	f.state.Write(FetchState[T]{Status: StatusPending})

	f.r.Go(func() func() {
		next, ok := f.send(ctx, resource, req)
		if !ok {
			return nil
		}

		return func() { f.complete(token, resource, next) }
	})
}

// Refetch initiates the last request again.
func (f *Fetch[T]) Refetch() {
	f.Initiate(f.resource, f.req)
}

// send runs on the request goroutine and must not touch any cell.
// It reports false when the request was cancelled.
func (f *Fetch[T]) send(ctx context.Context, resource string, req transport.Request) (FetchState[T], bool) {
	resp, err := f.transport.Send(ctx, resource, req)
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return FetchState[T]{}, false
	}

	if err != nil {
		return failed[T](&FetchError{Message: err.Error(), Err: err}), true
	}

	if !statuscode.IsSuccess(resp.StatusCode) {
		return failed[T](&FetchError{
			StatusCode: resp.StatusCode,
			Message:    statuscode.Message(resp.StatusCode, f.cfg.describe),
		}), true
	}

	var data T
	if err := f.cfg.decoder.Unmarshal(resp.Body, &data); err != nil {
		return failed[T](&FetchError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Invalid response body: %v", err),
			Err:        err,
		}), true
	}

	return FetchState[T]{Status: StatusSuccess, Data: data}, true
}

func failed[T any](err *FetchError) FetchState[T] {
	return FetchState[T]{Status: StatusError, Err: err}
}

func (f *Fetch[T]) complete(token ulid.ULID, resource string, next FetchState[T]) {
	if f.token != token {
		return
	}
	f.release()

	if next.Err != nil && f.cfg.logErrors && f.cfg.sink != nil {
		f.cfg.sink(fmt.Sprintf("fetch %s: %s", resource, next.Err.Message))
	}

	f.state.Write(next)
}

func (f *Fetch[T]) release() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.token = ulid.ULID{}
}

// Cancel aborts the live request. The state stays as it is.
func (f *Fetch[T]) Cancel() {
	f.release()
}

// Live reports whether a request is in flight.
func (f *Fetch[T]) Live() bool {
	return f.token != ulid.ULID{}
}

// State reads the committed state, tracking the dependency if within a reactive context.
func (f *Fetch[T]) State() FetchState[T] {
	return f.state.Read()
}

// Read is State, so a fetch can be used wherever a Reader is expected.
func (f *Fetch[T]) Read() FetchState[T] {
	return f.state.Read()
}

func (f *Fetch[T]) Status() Status {
	return f.state.Read().Status
}

// Data returns the decoded response, ok only in the success state.
func (f *Fetch[T]) Data() (T, bool) {
	s := f.state.Read()
	return s.Data, s.Status == StatusSuccess
}

func (f *Fetch[T]) Err() *FetchError {
	return f.state.Read().Err
}

// Subscribe calls fn with the committed state after every change.
func (f *Fetch[T]) Subscribe(fn func(FetchState[T])) (unsubscribe func()) {
	return f.state.Subscribe(fn)
}
