package imagine

import "strings"

// Operation names one of the endpoints backed by the image client.
type Operation string

const (
	OperationImagine     Operation = "imagine"
	OperationVariation   Operation = "variation"
	OperationUpscale     Operation = "upscale"
	OperationSimpleImage Operation = "simpleimage"
	OperationZoomOut     Operation = "zoomout"
)

// Title returns the display name used in caller-facing error messages.
func (o Operation) Title() string {
	switch o {
	case OperationImagine:
		return "Imagine"
	case OperationVariation:
		return "Variation"
	case OperationUpscale:
		return "Upscale"
	case OperationSimpleImage:
		return "SimpleImage"
	case OperationZoomOut:
		return "ZoomOut"
	default:
		return string(o)
	}
}

// GenerationResult is the normalized shape returned by every endpoint on success.
type GenerationResult struct {
	ID    string `json:"id"`
	Flags int    `json:"flags"`
	Hash  string `json:"hash"`
	URI   string `json:"uri"`
}

// MessageOption is a button attached to a finished message.
type MessageOption struct {
	Label    string `json:"label"`
	CustomID string `json:"custom"`
}

// Message is the raw result produced by the image client.
type Message struct {
	ID       string
	Flags    int
	Hash     string
	URI      string
	ProxyURI string
	Content  string
	Progress string
	Width    int
	Height   int
	Options  []MessageOption
}

// Complete reports whether the message carries every field needed for a GenerationResult.
func (m *Message) Complete() bool {
	return m != nil && m.ID != "" && m.Hash != "" && m.URI != ""
}

// Result projects the message onto the public result shape.
func (m *Message) Result() GenerationResult {
	return GenerationResult{
		ID:    m.ID,
		Flags: m.Flags,
		Hash:  m.Hash,
		URI:   m.URI,
	}
}

// ProgressFunc receives intermediate previews of a running job.
// Calls for a single job arrive in emission order.
type ProgressFunc func(uri, progress string)

// ZoomLevel selects the outpaint or vary action applied by ZoomOut.
type ZoomLevel string

const (
	ZoomLevel2x   ZoomLevel = "2x"
	ZoomLevel1_5x ZoomLevel = "1.5x"
	ZoomLevelHigh ZoomLevel = "high"
	ZoomLevelLow  ZoomLevel = "low"
)

// ParseZoomLevel normalizes raw input; an empty value selects 2x.
func ParseZoomLevel(raw string) (ZoomLevel, bool) {
	switch ZoomLevel(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return ZoomLevel2x, true
	case ZoomLevel2x:
		return ZoomLevel2x, true
	case ZoomLevel1_5x:
		return ZoomLevel1_5x, true
	case ZoomLevelHigh:
		return ZoomLevelHigh, true
	case ZoomLevelLow:
		return ZoomLevelLow, true
	default:
		return "", false
	}
}

// ActionOptions describes a button action on a previously generated message.
type ActionOptions struct {
	MsgID    string
	Index    int
	Flags    int
	Hash     string
	Level    ZoomLevel
	Progress ProgressFunc
}
