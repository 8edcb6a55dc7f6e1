package mdx

import "log/slog"

// Sink receives each resolved (key, payload) pair in keyword-block order.
// Implementations (RawStore, BelugaBuilder) choose how to batch or encode
// writes; the driver makes no ordering or deduplication decisions of its
// own.
type Sink interface {
	Put(key string, payload []byte) error
}

// Drive iterates blocks in order and, within each block, keywords in
// stored order, resolving each one and emitting it to sink. It is a
// single-threaded, sequential pipeline: no reordering, no deduplication
// at this layer.
//
// Propagation policy: a single headword's resolve failure is logged and
// skipped, the driver continues; a sink error aborts the run, since flush
// failures are fatal.
func Drive(blocks []KeywordBlockIndex, res *Resolver, sink Sink) error {
	for _, b := range blocks {
		for _, kw := range b.Keywords {
			key, payload, err := res.Resolve(kw)
			if err != nil {
				slog.Warn("skipping headword: resolve failed", "key", kw.Key, "error", err)
				continue
			}

			if err := sink.Put(key, payload); err != nil {
				return err
			}
		}
	}

	return nil
}
