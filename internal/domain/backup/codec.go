package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/armor-tracker/internal/domain/armor"
	"github.com/andrescamacho/armor-tracker/internal/domain/progress"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

// Limits applied to untrusted backups.
const (
	DefaultMaxSizeBytes  = 1024 * 1024
	DefaultMaxDepth      = 32
	MaxArmorPieces       = 500
	MaxMaterials         = 1200
	MaxStringLength      = 220
	MaxMaterialsPerLevel = 24
)

const reservedKey = "__proto__"

// Options configures a Codec. Zero values select the defaults.
type Options struct {
	MaxSizeBytes int64
	MaxDepth     int
	Clock        shared.Clock
}

// Codec turns untrusted backup documents into a validated dataset and a
// sanitized state. It never returns a partial result.
type Codec struct {
	maxSize  int64
	maxDepth int
	clock    shared.Clock
	validate *validator.Validate
}

// Result is an accepted backup.
type Result struct {
	Dataset *armor.Dataset
	State   *progress.State
}

// NewCodec creates a Codec.
func NewCodec(opts Options) *Codec {
	c := &Codec{
		maxSize:  opts.MaxSizeBytes,
		maxDepth: opts.MaxDepth,
		clock:    opts.Clock,
		validate: validator.New(),
	}
	if c.maxSize <= 0 {
		c.maxSize = DefaultMaxSizeBytes
	}
	if c.maxDepth <= 0 {
		c.maxDepth = DefaultMaxDepth
	}
	if c.clock == nil {
		c.clock = shared.NewRealClock()
	}
	return c
}

// MaxSizeBytes is the configured size ceiling.
func (c *Codec) MaxSizeBytes() int64 {
	return c.maxSize
}

// ParseContent runs the full validation pipeline over a backup document.
// The first failing check determines the returned *Error.
func (c *Codec) ParseContent(content []byte) (*Result, error) {
	if len(content) == 0 {
		return nil, newError(KindEmpty)
	}
	if int64(len(content)) > c.maxSize {
		return nil, newError(KindTooLarge)
	}

	payload, err := decodeTree(content)
	if err != nil {
		return nil, newError(KindInvalidJSON).wrap(err)
	}

	root, ok := payload.(map[string]any)
	if !ok || root == nil {
		return nil, newError(KindMalformed)
	}
	switch inspectTree(root, c.maxDepth) {
	case treeReservedKey:
		return nil, newError(KindUnsafePayload)
	case treeTooDeep:
		return nil, newError(KindMalformed).withDetail(fmt.Sprintf("(nesting deeper than %d levels)", c.maxDepth))
	}

	rawData, hasData := root["data"]
	rawState, hasState := root["state"]
	if !hasData || !hasState {
		return nil, newError(KindMissingFields)
	}

	dataset, err := c.validateDataset(rawData)
	if err != nil {
		return nil, err
	}

	state, err := c.sanitizeState(dataset, rawState)
	if err != nil {
		return nil, err
	}

	return &Result{Dataset: dataset, State: state}, nil
}

// Encode writes a backup document holding the dataset and the state.
func Encode(d *armor.Dataset, s *progress.State) ([]byte, error) {
	doc := struct {
		Data  *armor.Dataset  `json:"data"`
		State *progress.State `json:"state"`
	}{Data: d, State: s}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return raw, nil
}

func decodeTree(content []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

type treeIssue int

const (
	treeOK treeIssue = iota
	treeReservedKey
	treeTooDeep
)

// inspectTree walks every object and array. A reserved key anywhere wins
// over excessive depth. Containers nested past maxDepth are not descended.
func inspectTree(v any, maxDepth int) treeIssue {
	tooDeep := false
	var walk func(node any, depth int) bool
	walk = func(node any, depth int) bool {
		switch n := node.(type) {
		case map[string]any:
			if _, ok := n[reservedKey]; ok {
				return true
			}
			if depth > maxDepth {
				tooDeep = true
				return false
			}
			for _, child := range n {
				if walk(child, depth+1) {
					return true
				}
			}
		case []any:
			if depth > maxDepth {
				tooDeep = true
				return false
			}
			for _, child := range n {
				if walk(child, depth+1) {
					return true
				}
			}
		}
		return false
	}

	if walk(v, 1) {
		return treeReservedKey
	}
	if tooDeep {
		return treeTooDeep
	}
	return treeOK
}
