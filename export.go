package scenepack

import (
	"fmt"
	"sync"
	"time"
)

// maxEncoders sets the maximum number of concurrently running encoders.
const maxEncoders = 4

// Export is the outcome of encoding one scene with one strategy.
type Export struct {
	Strategy Strategy
	Data     []byte
	Size     int
	Elapsed  time.Duration
}

// SavingsOver reports how much smaller the export is than the baseline,
// in percent. A negative value means the export came out larger.
func (e Export) SavingsOver(baseline Export) float64 {
	if baseline.Size == 0 {
		return 0
	}
	return (1 - float64(e.Size)/float64(baseline.Size)) * 100
}

// encodeResult pairs an export with the slot it belongs to, so the
// collected slice keeps the canonical order no matter which encoder
// finishes first.
type encodeResult struct {
	idx int
	exp Export
	err error
}

// ExportAll encodes the collection under every strategy and returns the
// exports in canonical order. Encoders run concurrently; the first
// failure aborts the run.
func ExportAll(c Collection) ([]Export, error) {
	return ExportStrategies(c, Strategies())
}

// ExportStrategies encodes the collection under the given strategies
// concurrently, capped at maxEncoders workers.
func ExportStrategies(c Collection, strategies []Strategy) ([]Export, error) {
	exports := make([]Export, len(strategies))
	if len(strategies) == 0 {
		return exports, nil
	}
	start := time.Now()

	workers := len(strategies)
	if workers > maxEncoders {
		workers = maxEncoders
	}

	jobs := make(chan int)
	results := make(chan encodeResult)
	done := make(chan interface{})
	defer close(done)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				exp, err := exportOne(c, strategies[idx])
				select {
				case <-done:
					return
				case results <- encodeResult{idx: idx, exp: exp, err: err}:
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range strategies {
			select {
			case <-done:
				return
			case jobs <- i:
			}
		}
	}()

	// Close the channel after the values are consumed.
	go func() {
		defer close(results)
		wg.Wait()
	}()

	for res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("%s strategy: %w", strategies[res.idx], res.err)
		}
		exports[res.idx] = res.exp
	}

	Logger().Debug("scene exported",
		"strategies", len(strategies),
		"shapes", len(c),
		"elapsed", time.Since(start),
	)
	return exports, nil
}

// exportOne encodes the collection with a single strategy, timing just
// the encoding step.
func exportOne(c Collection, s Strategy) (Export, error) {
	codec, err := NewCodec(s)
	if err != nil {
		return Export{}, err
	}
	start := time.Now()
	data, err := codec.Encode(c)
	if err != nil {
		return Export{}, err
	}
	return Export{
		Strategy: s,
		Data:     data,
		Size:     len(data),
		Elapsed:  time.Since(start),
	}, nil
}
