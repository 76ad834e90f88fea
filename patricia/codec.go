package patricia

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/fxamacker/cbor/v2"
)

// ValueCodec converts values to and from bytes for snapshots.
type ValueCodec[V any] interface {
	EncodeValue(V) ([]byte, error)
	DecodeValue([]byte) (V, error)
}

// CBORCodec encodes values with CBOR.
type CBORCodec[V any] struct{}

func (CBORCodec[V]) EncodeValue(val V) ([]byte, error) {
	return cbor.Marshal(val)
}

func (CBORCodec[V]) DecodeValue(data []byte) (V, error) {
	var val V
	err := cbor.Unmarshal(data, &val)
	return val, err
}

// StringCodec stores string values as raw bytes.
type StringCodec struct{}

func (StringCodec) EncodeValue(val string) ([]byte, error) {
	return []byte(val), nil
}

func (StringCodec) DecodeValue(data []byte) (string, error) {
	return string(data), nil
}

// record is a single node of a snapshot. Records are stored in pre-order, every node
// followed by its Children subtrees ordered by first rune.
type record struct {
	_        struct{} `cbor:",toarray"`
	Prefix   string
	Value    *[]byte // nil if the node has no value
	Children uint64
}

var snapshotDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		MaxArrayElements: math.MaxInt32,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// Encode writes a snapshot of the trie.
func (t *Trie[V]) Encode(w io.Writer, codec ValueCodec[V]) error {
	recs, err := encodeRecords(&t.root, t.size+1, codec)
	if err != nil {
		return err
	}

	return cbor.NewEncoder(w).Encode(recs)
}

// Marshal returns a snapshot of the trie.
func (t *Trie[V]) Marshal(codec ValueCodec[V]) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Encode(&buf, codec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeRecords lists the nodes below root in pre-order.
func encodeRecords[V any](root *node[V], sizeHint int, codec ValueCodec[V]) ([]record, error) {
	var (
		recs    = make([]record, 0, sizeHint)
		toVisit = []*node[V]{root}
	)

	for l := len(toVisit); l > 0; l = len(toVisit) {
		n := toVisit[l-1]
		toVisit = toVisit[:l-1]

		rec := record{
			Prefix:   string(n.prefix),
			Children: uint64(n.kids.len()),
		}

		if n.hasVal {
			data, err := codec.EncodeValue(n.val)
			if err != nil {
				return nil, fmt.Errorf("encode value at %q: %w", rec.Prefix, err)
			}
			if data == nil {
				data = []byte{} // nil would turn into "no value"
			}
			rec.Value = &data
		}

		recs = append(recs, rec)

		for i := n.kids.len() - 1; i >= 0; i-- {
			toVisit = append(toVisit, n.kids.list[i])
		}
	}

	return recs, nil
}

// Decode reads a snapshot written by Encode. The snapshot must span the rest of r:
// any data after it is an error. On any failure Decode returns a nil Trie and
// an error wrapping ErrDecode.
func Decode[V any](r io.Reader, codec ValueCodec[V], opts ...Option) (*Trie[V], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return Unmarshal(data, codec, opts...)
}

// Unmarshal decodes a snapshot produced by Marshal.
func Unmarshal[V any](data []byte, codec ValueCodec[V], opts ...Option) (*Trie[V], error) {
	var recs []record

	if err := snapshotDecMode.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return decodeRecords(recs, codec, opts...)
}

func decodeRecords[V any](recs []record, codec ValueCodec[V], opts ...Option) (*Trie[V], error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: snapshot has no root", ErrDecode)
	}

	d := decoder[V]{
		recs:  recs,
		codec: codec,
		trie:  New[V](opts...),
	}

	if err := d.decode(); err != nil {
		return nil, err
	}
	if d.pos != len(recs) {
		return nil, fmt.Errorf("%w: %d trailing records", ErrDecode, len(recs)-d.pos)
	}

	if err := d.trie.Check(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return d.trie, nil
}

type decoder[V any] struct {
	recs  []record
	pos   int
	codec ValueCodec[V]
	trie  *Trie[V]
}

// decode rebuilds the tree into d.trie. Nodes still expecting children are kept on
// a stack, so the depth of a snapshot is limited by memory only.
func (d *decoder[V]) decode() error {
	type pending struct {
		n    *node[V]
		at   int    // record of n
		left uint64 // children still to read
	}

	root := &d.trie.root

	at, left, err := d.next(root, true)
	if err != nil {
		return err
	}

	stack := []pending{{root, at, left}}

	for l := len(stack); l > 0; l = len(stack) {
		top := &stack[l-1]
		if top.left == 0 {
			stack = stack[:l-1]
			continue
		}
		top.left--

		var (
			parent, parentAt = top.n, top.at
			child            = &node[V]{}
		)

		at, left, err := d.next(child, false)
		if err != nil {
			return err
		}
		if !parent.kids.add(child) {
			return fmt.Errorf("%w: record %d: duplicate child starting with %q",
				ErrDecode, parentAt, child.prefix[0])
		}
		if left > 0 {
			stack = append(stack, pending{child, at, left})
		}
	}

	return nil
}

// next decodes the record at d.pos into n and returns its position and the number
// of children that follow it.
func (d *decoder[V]) next(n *node[V], isRoot bool) (int, uint64, error) {
	if d.pos >= len(d.recs) {
		return 0, 0, fmt.Errorf("%w: dangling child reference at record %d", ErrDecode, d.pos)
	}

	var (
		at  = d.pos
		rec = d.recs[at]
	)

	d.pos++

	switch {
	case !utf8.ValidString(rec.Prefix):
		return 0, 0, fmt.Errorf("%w: record %d: prefix is not valid UTF-8", ErrDecode, at)
	case isRoot && rec.Prefix != "":
		return 0, 0, fmt.Errorf("%w: root prefix %q is not empty", ErrDecode, rec.Prefix)
	case !isRoot && rec.Prefix == "":
		return 0, 0, fmt.Errorf("%w: record %d: empty prefix", ErrDecode, at)
	case rec.Children > uint64(len(d.recs)-d.pos):
		return 0, 0, fmt.Errorf("%w: record %d: %d children, %d records left",
			ErrDecode, at, rec.Children, len(d.recs)-d.pos)
	}

	if !isRoot {
		n.prefix = []rune(rec.Prefix)
	}

	if rec.Value != nil {
		val, err := d.codec.DecodeValue(*rec.Value)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: record %d: decode value: %v", ErrDecode, at, err)
		}
		n.val, n.hasVal = val, true
		d.trie.size++
	}

	n.kids.grow(int(rec.Children))

	return at, rec.Children, nil
}
