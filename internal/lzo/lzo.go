// Package lzo implements LZO1X decompression, the bitstream MDX/MDD calls
// "LZO" block compression. This is a from-scratch decoder following the
// well-documented public LZO1X-1 "safe decompress" bitstream and its
// opcode encoding (the M1/M2/M3/M4 match families and their length/offset
// continuation bytes).
package lzo

import "github.com/belugareader/mdict/errs"

// decoder holds the cursor state threaded through a single decompress run.
type decoder struct {
	src []byte
	ip  int
	out []byte
}

// Decompress inverts an LZO1X stream. sizeHint presizes the output
// buffer; it grows past the hint if the stream decodes to more bytes
// than advertised.
func Decompress(src []byte, sizeHint int) ([]byte, error) {
	if sizeHint < 0 {
		sizeHint = 0
	}
	if len(src) == 0 {
		return []byte{}, nil
	}

	d := &decoder{src: src, out: make([]byte, 0, sizeHint)}
	if err := d.run(); err != nil {
		return nil, err
	}

	return d.out, nil
}

func (d *decoder) byte() (byte, bool) {
	if d.ip >= len(d.src) {
		return 0, false
	}
	b := d.src[d.ip]
	d.ip++
	return b, true
}

// varLength consumes the zero-extension length tail shared by every opcode
// family: a run of 0x00 bytes adds 255 each, the first non-zero byte is
// added to the running total and ends the run.
func (d *decoder) varLength(base int) (int, bool) {
	t := base
	for {
		b, ok := d.byte()
		if !ok {
			return 0, false
		}
		if b != 0 {
			return t + int(b), true
		}
		t += 255
	}
}

func (d *decoder) literal(n int) bool {
	if n < 0 || d.ip+n > len(d.src) {
		return false
	}
	d.out = append(d.out, d.src[d.ip:d.ip+n]...)
	d.ip += n
	return true
}

func (d *decoder) match(distance, length int) bool {
	if distance <= 0 || distance > len(d.out) || length < 0 {
		return false
	}
	start := len(d.out) - distance
	for i := 0; i < length; i++ {
		d.out = append(d.out, d.out[start+i])
	}
	return true
}

// run walks the stream one literal-run-then-matches cycle at a time. Each
// cycle is: an optional literal run, then one match that may itself chain
// into further matches (each preceded by a short trailing literal count
// folded into the match opcode's low 2 bits) until a match's trailing
// count is zero, at which point control returns here for the next cycle.
func (d *decoder) run() error {
	if first, ok := d.byte(); ok && first > 17 {
		t := int(first) - 17

		var done bool
		var err error
		if t >= 4 {
			if !d.literal(t) {
				return errs.ErrCorruptBlock
			}
			done, err = d.afterLiteralRun()
		} else {
			// A short-enough initial run carries no literal bytes of
			// its own; t is instead the trailing count folded into
			// what would otherwise be a match opcode.
			done, err = d.tailThenDispatch(t)
		}
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	} else {
		d.ip = 0
	}

	for {
		b, ok := d.byte()
		if !ok {
			return errs.ErrCorruptBlock
		}
		t := int(b)

		if t < 16 {
			if t == 0 {
				n, ok := d.varLength(15)
				if !ok {
					return errs.ErrCorruptBlock
				}
				t = n
			}
			t += 3
			if !d.literal(t) {
				return errs.ErrCorruptBlock
			}

			done, err := d.afterLiteralRun()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			continue
		}

		done, err := d.dispatchLoop(t)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// afterLiteralRun reads the opcode right after a literal run. A value <16
// here is a distinct, biased short-match form (3 bytes, distance offset by
// 2048) that only ever follows a literal run directly; >=16 is an ordinary
// match opcode.
func (d *decoder) afterLiteralRun() (bool, error) {
	b, ok := d.byte()
	if !ok {
		return false, errs.ErrCorruptBlock
	}
	t := int(b)

	if t >= 16 {
		return d.dispatchLoop(t)
	}

	lo, ok := d.byte()
	if !ok {
		return false, errs.ErrCorruptBlock
	}
	distance := 1 + 2048 + (t >> 2) + (int(lo) << 2)
	if !d.match(distance, 3) {
		return false, errs.ErrCorruptBlock
	}

	tail := t & 3
	if tail == 0 {
		return false, nil
	}

	return d.tailThenDispatch(tail)
}

// tailThenDispatch copies a match's trailing literal bytes, reads the next
// opcode, and feeds it straight into the match dispatch loop.
func (d *decoder) tailThenDispatch(tail int) (bool, error) {
	if !d.literal(tail) {
		return false, errs.ErrCorruptBlock
	}
	b, ok := d.byte()
	if !ok {
		return false, errs.ErrCorruptBlock
	}

	return d.dispatchLoop(int(b))
}

// dispatchLoop decodes consecutive match opcodes (the form reached once a
// literal run has already been consumed, or after a prior match's trailing
// literal count). It returns once a match's trailing count is zero, or the
// end-of-stream marker is seen.
func (d *decoder) dispatchLoop(t int) (bool, error) {
	for {
		distance, length, tail, done, err := d.decodeOpcode(t)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if !d.match(distance, length) {
			return false, errs.ErrCorruptBlock
		}
		if tail == 0 {
			return false, nil
		}

		if !d.literal(tail) {
			return false, errs.ErrCorruptBlock
		}
		b, ok := d.byte()
		if !ok {
			return false, errs.ErrCorruptBlock
		}
		t = int(b)
	}
}

// decodeOpcode decodes one match token (the M1 short form, or the M2/M3/M4
// families) and returns its distance, length, and trailing literal count.
// done reports the LZO end-of-stream marker (a distance-zero M4 token).
func (d *decoder) decodeOpcode(t int) (distance, length, tail int, done bool, err error) {
	switch {
	case t < 16: // M1: short match, unbiased, 2 bytes.
		lo, ok := d.byte()
		if !ok {
			return 0, 0, 0, false, errs.ErrCorruptBlock
		}
		distance = 1 + (t >> 2) + (int(lo) << 2)
		length = 2
		tail = t & 3

	case t >= 64: // M2: short/medium distance, length in high bits.
		lo, ok := d.byte()
		if !ok {
			return 0, 0, 0, false, errs.ErrCorruptBlock
		}
		distance = 1 + ((t >> 2) & 7) + (int(lo) << 3)
		length = (t >> 5) + 1
		tail = t & 3

	case t >= 32: // M3: medium distance, extensible length.
		length = t & 31
		if length == 0 {
			n, ok := d.varLength(31)
			if !ok {
				return 0, 0, 0, false, errs.ErrCorruptBlock
			}
			length = n
		}
		length += 2

		b0, ok0 := d.byte()
		b1, ok1 := d.byte()
		if !ok0 || !ok1 {
			return 0, 0, 0, false, errs.ErrCorruptBlock
		}
		distance = 1 + (int(b0) >> 2) + (int(b1) << 6)
		tail = int(b0) & 3

	default: // 16 <= t < 32: M4, far distance, extensible length, also the EOF marker.
		length = t & 7
		highBit := (t & 8) << 11
		if length == 0 {
			n, ok := d.varLength(7)
			if !ok {
				return 0, 0, 0, false, errs.ErrCorruptBlock
			}
			length = n
		}
		length += 2

		b0, ok0 := d.byte()
		b1, ok1 := d.byte()
		if !ok0 || !ok1 {
			return 0, 0, 0, false, errs.ErrCorruptBlock
		}
		raw := highBit + (int(b0)>>2)&0x3f + (int(b1) << 6)
		if raw == 0 {
			return 0, 0, 0, true, nil
		}
		distance = raw + 0x4000
		tail = int(b0) & 3
	}

	return distance, length, tail, false, nil
}
