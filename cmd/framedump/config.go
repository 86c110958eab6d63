package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tonyriverms/streamcodec/encoding"
	"github.com/tonyriverms/streamcodec/endian"
	"github.com/tonyriverms/streamcodec/format"
	"github.com/tonyriverms/streamcodec/frame"
	"github.com/tonyriverms/streamcodec/internal/collision"
)

// Frame kinds a layout entry can name.
const (
	kindPrimitive = "primitive"
	kindBlock     = "block"
	kindText      = "text"
	kindSequence  = "sequence"
	kindUncounted = "uncounted"
)

type fileLayout struct {
	ByteOrder    string      `toml:"byte_order"`
	TextEncoding string      `toml:"text_encoding"`
	StrictGuards bool        `toml:"strict_guards"`
	MaxLength    int         `toml:"max_length"`
	Blocks       []fileBlock `toml:"block"`
}

type fileBlock struct {
	Name  string `toml:"name"`
	Kind  string `toml:"kind"`
	Tag   string `toml:"tag"`
	Key   string `toml:"key"`
	Value string `toml:"value"`
	Guard string `toml:"guard"`
	Skip  bool   `toml:"skip"`
}

// layout describes the frames of a file in the order they were written.
type layout struct {
	ByteOrder    endian.EndianEngine
	Text         encoding.TextCodec
	StrictGuards bool
	MaxLength    int
	Blocks       []blockDef
}

type blockDef struct {
	Name  string
	Kind  string
	Tag   format.Tag
	Key   format.Tag
	Value format.Tag
	Guard frame.Guard
	Skip  bool
}

func defaultLayout() layout {
	return layout{
		ByteOrder: endian.GetLittleEndianEngine(),
		Text:      encoding.UTF8,
	}
}

// ReaderOptions returns the encoding options matching the layout.
func (l layout) ReaderOptions() []encoding.Option {
	opts := []encoding.Option{
		encoding.WithEngine(l.ByteOrder),
		encoding.WithTextCodec(l.Text),
		encoding.WithMaxLength(l.MaxLength),
	}
	if l.StrictGuards {
		opts = append(opts, encoding.WithStrictGuards())
	}

	return opts
}

func loadLayout(path string) (layout, error) {
	var raw fileLayout
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return layout{}, fmt.Errorf("load layout: %w", err)
	}

	return buildLayout(meta, raw)
}

func decodeLayout(data string) (layout, error) {
	var raw fileLayout
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return layout{}, fmt.Errorf("decode layout: %w", err)
	}

	return buildLayout(meta, raw)
}

func buildLayout(meta toml.MetaData, raw fileLayout) (layout, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return layout{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	l := defaultLayout()

	if meta.IsDefined("byte_order") {
		engine, err := endian.Parse(raw.ByteOrder)
		if err != nil {
			return layout{}, fmt.Errorf("parse byte_order: %w", err)
		}
		l.ByteOrder = engine
	}

	if meta.IsDefined("text_encoding") {
		codec, err := encoding.TextCodecByName(raw.TextEncoding)
		if err != nil {
			return layout{}, fmt.Errorf("parse text_encoding: %w", err)
		}
		l.Text = codec
	}

	if meta.IsDefined("strict_guards") {
		l.StrictGuards = raw.StrictGuards
	}

	if meta.IsDefined("max_length") {
		if raw.MaxLength < 0 {
			return layout{}, fmt.Errorf("parse max_length: negative value %d", raw.MaxLength)
		}
		l.MaxLength = raw.MaxLength
	}

	guards := collision.NewTracker()
	l.Blocks = make([]blockDef, 0, len(raw.Blocks))
	for i, b := range raw.Blocks {
		def, err := parseBlock(b, guards)
		if err != nil {
			return layout{}, fmt.Errorf("block %d (%s): %w", i, b.Name, err)
		}
		if def.Kind == kindUncounted && i != len(raw.Blocks)-1 {
			return layout{}, fmt.Errorf("block %d (%s): uncounted sequence must be the last block", i, b.Name)
		}
		l.Blocks = append(l.Blocks, def)
	}

	return l, nil
}

func parseBlock(b fileBlock, guards *collision.Tracker) (blockDef, error) {
	def := blockDef{
		Name: strings.TrimSpace(b.Name),
		Kind: strings.ToLower(strings.TrimSpace(b.Kind)),
		Skip: b.Skip,
	}
	if def.Name == "" {
		return blockDef{}, fmt.Errorf("missing name")
	}

	var err error
	switch def.Kind {
	case kindPrimitive:
		if def.Tag, err = parseTag("tag", b.Tag); err != nil {
			return blockDef{}, err
		}
		if b.Guard != "" {
			return blockDef{}, fmt.Errorf("primitive values carry no guard")
		}

		return def, nil
	case kindBlock, kindText:
	case kindSequence, kindUncounted:
		if def.Key, err = parseTag("key", b.Key); err != nil {
			return blockDef{}, err
		}
		if def.Value, err = parseTag("value", b.Value); err != nil {
			return blockDef{}, err
		}
	default:
		return blockDef{}, fmt.Errorf("unknown kind %q", b.Kind)
	}

	if def.Guard, err = parseGuard(b.Guard, guards); err != nil {
		return blockDef{}, err
	}
	if def.Kind == kindUncounted && def.Guard.Enabled {
		return blockDef{}, fmt.Errorf("uncounted sequences carry no guard")
	}

	return def, nil
}

func parseTag(field, name string) (format.Tag, error) {
	tag, ok := format.ParseTag(name)
	if !ok {
		return 0, fmt.Errorf("parse %s: unknown tag %q", field, name)
	}

	return tag, nil
}

// parseGuard accepts none, block, sequence, hex:<16 hex digits>, or any other
// name, which is hashed into an application check code. Custom guards are
// tracked so that two names deriving the same code are rejected.
func parseGuard(name string, guards *collision.Tracker) (frame.Guard, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "", "none":
		return frame.Unguarded, nil
	case "block":
		return frame.BlockGuard(), nil
	case "sequence":
		return frame.SequenceGuard(), nil
	}

	code := format.CheckCodeOf(name)
	if digits, ok := strings.CutPrefix(name, "hex:"); ok {
		if code, ok = format.ParseCheckCode(digits); !ok {
			return frame.Guard{}, fmt.Errorf("parse guard: invalid check code %q", digits)
		}
	}
	if err := guards.TrackName(name, code); err != nil {
		return frame.Guard{}, fmt.Errorf("parse guard: %w", err)
	}

	return frame.Guarded(code), nil
}
