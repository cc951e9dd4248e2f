package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"lecturenotes/internal/summarizer"
)

type request struct {
	ctx      context.Context
	input    summarizer.Input
	response chan response
}

type response struct {
	summary string
	err     error
}

// RateLimiter is a Summarizer that forwards calls to next one at a time, at
// least minInterval apart.
type RateLimiter struct {
	next        summarizer.Summarizer
	queue       chan request
	minInterval time.Duration
	lastSent    time.Time
	ctx         context.Context
	cancel      context.CancelFunc
	done        chan struct{}
	log         *slog.Logger
}

var _ summarizer.Summarizer = (*RateLimiter)(nil)

func New(next summarizer.Summarizer, minInterval time.Duration, log *slog.Logger) *RateLimiter {
	ctx, cancel := context.WithCancel(context.Background())

	rl := &RateLimiter{
		next:        next,
		queue:       make(chan request, queueSize),
		minInterval: minInterval,
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
		log:         log,
	}

	go rl.processQueue()

	return rl
}

func (rl *RateLimiter) Summarize(
	ctx context.Context,
	input summarizer.Input,
) (string, error) {
	req := request{
		ctx:      ctx,
		input:    input,
		response: make(chan response, 1),
	}

	select {
	case rl.queue <- req:
	case <-ctx.Done():
		return "", ctx.Err()
	case <-rl.ctx.Done():
		return "", rl.ctx.Err()
	}

	select {
	case resp := <-req.response:
		return resp.summary, resp.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-rl.done:
		select {
		case resp := <-req.response:
			return resp.summary, resp.err
		default:
			return "", rl.ctx.Err()
		}
	}
}

// Stop cancels the in-flight call, fails queued ones and waits for the worker
// to exit.
func (rl *RateLimiter) Stop() {
	rl.cancel()
	<-rl.done
}

func (rl *RateLimiter) processQueue() {
	defer close(rl.done)

	for {
		select {
		case req := <-rl.queue:
			rl.handleRequest(req)
		case <-rl.ctx.Done():
			for {
				select {
				case req := <-rl.queue:
					req.response <- response{err: rl.ctx.Err()}
				default:
					return
				}
			}
		}
	}
}

func (rl *RateLimiter) handleRequest(req request) {
	if delay := rl.delay(); delay > 0 {
		rl.log.DebugContext(req.ctx, "Rate limiting summarization",
			"delay", delay,
			"queueLen", len(rl.queue))

		select {
		case <-time.After(delay):
		case <-req.ctx.Done():
			req.response <- response{err: req.ctx.Err()}
			return
		case <-rl.ctx.Done():
			req.response <- response{err: rl.ctx.Err()}
			return
		}
	}

	if err := req.ctx.Err(); err != nil {
		req.response <- response{err: err}
		return
	}

	ctx, cancel := context.WithCancel(req.ctx)
	stop := context.AfterFunc(rl.ctx, cancel)

	summary, err := rl.next.Summarize(ctx, req.input)

	stop()
	cancel()
	rl.lastSent = time.Now()

	req.response <- response{
		summary: summary,
		err:     err,
	}
}

func (rl *RateLimiter) delay() time.Duration {
	if rl.minInterval <= 0 || rl.lastSent.IsZero() {
		return 0
	}

	return max(rl.minInterval-time.Since(rl.lastSent), 0)
}
