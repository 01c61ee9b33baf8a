package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/golang/glog"

	"github.com/AnatoleLucet/hooks"
	"github.com/AnatoleLucet/hooks/codec"
	"github.com/AnatoleLucet/hooks/internal/config"
	"github.com/AnatoleLucet/hooks/statuscode"
	"github.com/AnatoleLucet/hooks/store"
	"github.com/AnatoleLucet/hooks/transport"
)

const Version = "0.1.0"

const historyKey = "hooksctl/history"
const historyLimit = 50

const usage = `Inspect and drive stored and fetched cells.

Usage:
    hooksctl fetch <url>
        [--method=<method>]
        [--header=<header>...]
        [--data=<data>]
        [--output=<format>]
        [--config=<path>] [--v=<level>]
    hooksctl get <key> [--output=<format>] [--config=<path>] [--v=<level>]
    hooksctl set <key> <value> [--config=<path>] [--v=<level>]
    hooksctl rm <key> [--config=<path>] [--v=<level>]
    hooksctl history [--clear] [--config=<path>] [--v=<level>]
    hooksctl -h | --help
    hooksctl --version

Options:
    -h --help              Show this screen.
    --version              Show version.
    --config=<path>        YAML config file. Without one, values live in memory.
    --method=<method>      HTTP method [default: GET].
    --header=<header>      Request header as "Name: value".
    --data=<data>          Request body.
    --output=<format>      json or yaml [default: json].
    --clear                Forget the fetch history.
    --v=<level>            glog verbosity [default: 0].`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], Version)
	if err != nil {
		panic(err)
	}

	level, _ := opts.String("--v")
	flag.Set("logtostderr", "true")
	flag.Set("v", level)
	defer glog.Flush()

	cfg, err := loadConfig(opts)
	if err != nil {
		fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, closeStore, err := cfg.Store.Open(ctx)
	if err != nil {
		fail(err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			glog.Errorf("close store: %v", err)
		}
	}()

	c, err := cfg.Store.NewCodec()
	if err != nil {
		fail(err)
	}

	switch {
	case flagSet(opts, "fetch"):
		err = fetch(ctx, cfg, s, c, opts)
	case flagSet(opts, "get"):
		err = get(s, c, opts)
	case flagSet(opts, "set"):
		err = set(s, c, opts)
	case flagSet(opts, "rm"):
		err = remove(s, c, opts)
	case flagSet(opts, "history"):
		err = history(s, c, opts)
	}

	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	glog.Error(err)
	glog.Flush()
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func flagSet(opts docopt.Opts, name string) bool {
	v, _ := opts.Bool(name)
	return v
}

func loadConfig(opts docopt.Opts) (config.Config, error) {
	path, _ := opts.String("--config")
	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

func output(opts docopt.Opts) (codec.Codec, error) {
	format, _ := opts.String("--output")
	return codec.ByName(format)
}

func show(out codec.Codec, v any) error {
	data, err := out.Marshal(v)
	if err != nil {
		return err
	}

	fmt.Println(strings.TrimRight(string(data), "\n"))
	return nil
}

// openHistory mirrors the stored history into a list, every change of the list is written back.
func openHistory(s store.Store, c codec.Codec) (*hooks.List[string], *hooks.Stored[[]string], error) {
	stored, err := hooks.NewStored(s, historyKey, []string{}, hooks.WithCodec[[]string](c))
	if err != nil {
		return nil, nil, err
	}

	list := hooks.NewList(stored.Peek())
	list.Subscribe(stored.Write)

	return list, stored, nil
}

func fetch(ctx context.Context, cfg config.Config, s store.Store, c codec.Codec, opts docopt.Opts) error {
	url, _ := opts.String("<url>")
	method, _ := opts.String("--method")
	body, _ := opts.String("--data")

	out, err := output(opts)
	if err != nil {
		return err
	}

	req := transport.Request{
		Method: method,
		Header: http.Header{},
	}
	if body != "" {
		req.Body = []byte(body)
	}
	if headers, ok := opts["--header"].([]string); ok {
		for _, h := range headers {
			name, value, found := strings.Cut(h, ":")
			if !found {
				return fmt.Errorf("malformed header %q", h)
			}
			req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
		}
	}

	list, stored, err := openHistory(s, c)
	if err != nil {
		return err
	}

	describe := statuscode.Describe
	if cfg.Fetch.Detailed {
		describe = statuscode.DescribeDetailed
	}

	f := hooks.NewFetch[any](transport.NewHTTP(nil, cfg.Fetch.Timeout),
		hooks.WithDescriber(describe),
		hooks.WithLogErrors(cfg.Fetch.LogErrors),
	)

	f.Initiate(url, req)

	list.Push(url)
	if list.Len() > historyLimit {
		list.Shift()
	}
	if err := stored.Err(); err != nil {
		glog.Warningf("history not saved: %v", err)
	}

	glog.V(1).Infof("fetching %s %s", method, url)

	if err := hooks.Settle(ctx); err != nil {
		f.Cancel()
		if errors.Is(err, context.Canceled) {
			return errors.New("interrupted")
		}
		return err
	}

	state := f.State()
	switch state.Status {
	case hooks.StatusSuccess:
		return show(out, state.Data)
	case hooks.StatusError:
		return state.Err
	default:
		return fmt.Errorf("fetch %s did not complete", url)
	}
}

func get(s store.Store, c codec.Codec, opts docopt.Opts) error {
	key, _ := opts.String("<key>")

	out, err := output(opts)
	if err != nil {
		return err
	}

	v, err := hooks.NewStored[any](s, key, nil, hooks.WithCodec[any](c))
	if err != nil {
		return err
	}

	value, ok := v.Lookup()
	if !ok {
		return fmt.Errorf("%s is not set", key)
	}

	return show(out, value)
}

func set(s store.Store, c codec.Codec, opts docopt.Opts) error {
	key, _ := opts.String("<key>")
	raw, _ := opts.String("<value>")

	// YAML is a superset of JSON, numbers and booleans keep their type
	var value any
	if err := (codec.YAML{}).Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}

	v, err := hooks.NewStored[any](s, key, nil, hooks.WithCodec[any](c))
	if err != nil {
		return err
	}

	v.Write(value)
	return v.Err()
}

func remove(s store.Store, c codec.Codec, opts docopt.Opts) error {
	key, _ := opts.String("<key>")

	v, err := hooks.NewStored[any](s, key, nil, hooks.WithCodec[any](c))
	if err != nil {
		return err
	}

	v.Delete()
	return v.Err()
}

func history(s store.Store, c codec.Codec, opts docopt.Opts) error {
	list, stored, err := openHistory(s, c)
	if err != nil {
		return err
	}

	if flagSet(opts, "--clear") {
		list.Clear()
		return stored.Err()
	}

	for i, url := range list.Read() {
		fmt.Printf("%3d  %s\n", i+1, url)
	}
	return nil
}
