package clause

// This file implements the packed clause buffer format from spec.md
// §3 and §6: a self-delimiting int32 sequence grouping clauses by
// slot, best quality first, so a reader can stop early and a merger
// can enforce a literal budget without ever producing a torn clause.
//
// Wire shape (values are int32):
//
//	buffer   := slotRun*
//	slotRun  := slotKind slotA slotB count clauseEnc{count}
//	slotKind := 0 (exact length+LBD) | 1 (length only) | 2 (length+LBD sum)
//	clauseEnc:= length [lbd] literal{length}      // lbd field omitted iff length==1
//
// slotA/slotB carry the slot's Length/LBD (see ForClause); they
// exist for diagnostics and symmetric encode/decode but a reader never
// needs to trust them — each clause is independently self-delimiting
// via its own length prefix, which keeps the merger simple when
// buffers produced under different slot partitioning parameters (e.g.
// during a revision change) are merged together.

// Writer accumulates clauses already grouped by slot (best quality
// first) and serializes them into one packed buffer.
type Writer struct {
	slots  []Slot
	groups map[Slot][]Clause
}

// NewWriter creates an empty packed-buffer writer.
func NewWriter() *Writer {
	return &Writer{groups: make(map[Slot][]Clause)}
}

// Add appends a clause under the given slot. Slots are emitted in
// quality order regardless of the order Add is called in.
func (w *Writer) Add(s Slot, c Clause) {
	if _, ok := w.groups[s]; !ok {
		w.slots = append(w.slots, s)
	}
	w.groups[s] = append(w.groups[s], c)
}

// Bytes serializes the accumulated clauses into a packed buffer,
// respecting quality order. It enforces no size limit — callers that
// need a bounded buffer should use Merger instead, which enforces
// totalLiteralLimit while assembling the output.
func (w *Writer) Bytes() []int32 {
	slots := append([]Slot(nil), w.slots...)
	SortSlots(slots)
	out := make([]int32, 0, 64)
	for _, s := range slots {
		cs := w.groups[s]
		if len(cs) == 0 {
			continue
		}
		out = appendSlotHeader(out, s, int32(len(cs)))
		for _, c := range cs {
			out = appendClause(out, c)
		}
	}
	return out
}

func appendSlotHeader(out []int32, s Slot, count int32) []int32 {
	kind := int32(0)
	a, b := s.Length, s.LBD
	if s.BySum {
		kind = 2
	} else if s.LBD == 0 {
		kind = 1
	}
	return append(out, kind, a, b, count)
}

func appendClause(out []int32, c Clause) []int32 {
	out = append(out, int32(c.Len()))
	if c.Len() >= 2 {
		out = append(out, c.LBD)
	}
	for _, lit := range c.Literals {
		out = append(out, int32(lit))
	}
	return out
}

// Reader yields clauses out of a packed buffer in the order they were
// written (i.e. quality-descending, per slot).
type Reader struct {
	buf     []int32
	pos     int
	pending slotHeader
}

// NewReader wraps a packed buffer for sequential reading.
func NewReader(buf []int32) *Reader { return &Reader{buf: buf} }

// slotHeader is the decoded form of one slot run's header.
type slotHeader struct {
	slot  Slot
	count int32
}

func (r *Reader) readSlotHeader() (slotHeader, bool) {
	if r.pos+4 > len(r.buf) {
		return slotHeader{}, false
	}
	kind := r.buf[r.pos]
	a := r.buf[r.pos+1]
	b := r.buf[r.pos+2]
	count := r.buf[r.pos+3]
	r.pos += 4
	s := Slot{Length: a, LBD: b, BySum: kind == 2}
	if kind == 1 {
		s.LBD = 0
	}
	return slotHeader{slot: s, count: count}, true
}

func (r *Reader) readClause() (Clause, bool) {
	if r.pos >= len(r.buf) {
		return Clause{}, false
	}
	n := r.buf[r.pos]
	r.pos++
	if n <= 0 {
		return Clause{}, false
	}
	lbd := int32(1)
	if n >= 2 {
		if r.pos >= len(r.buf) {
			return Clause{}, false
		}
		lbd = r.buf[r.pos]
		r.pos++
	}
	if r.pos+int(n) > len(r.buf) {
		return Clause{}, false
	}
	lits := make([]Literal, n)
	for i := int32(0); i < n; i++ {
		lits[i] = Literal(r.buf[r.pos])
		r.pos++
	}
	return Clause{Literals: lits, LBD: lbd}, true
}

// Next returns the next clause and its slot, or ok=false at end of
// buffer.
func (r *Reader) Next() (Clause, Slot, bool) {
	for r.pending.count == 0 {
		if r.pos >= len(r.buf) {
			return Clause{}, Slot{}, false
		}
		hdr, ok := r.readSlotHeader()
		if !ok {
			return Clause{}, Slot{}, false
		}
		r.pending = hdr
	}
	c, ok := r.readClause()
	if !ok {
		return Clause{}, Slot{}, false
	}
	s := r.pending.slot
	r.pending.count--
	return c, s, true
}

// All reads every clause out of the buffer in order.
func (r *Reader) All() []Clause {
	var out []Clause
	for {
		c, _, ok := r.Next()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}
