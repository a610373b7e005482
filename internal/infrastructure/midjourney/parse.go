package midjourney

import (
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/janhq/imagine-api/internal/domain/imagine"
)

// Action identifies the interaction a job was started with.
type Action string

const (
	ActionImagine   Action = "imagine"
	ActionVariation Action = "variation"
	ActionUpscale   Action = "upscale"
	ActionZoomOut   Action = "zoomout"
)

var (
	progressPattern = regexp.MustCompile(`\((\d{1,3})%\)`)
	promptPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// customID returns the button id pressed for a component action.
func customID(action Action, opts imagine.ActionOptions) (string, error) {
	switch action {
	case ActionVariation:
		return fmt.Sprintf("MJ::JOB::variation::%d::%s", opts.Index, opts.Hash), nil
	case ActionUpscale:
		return fmt.Sprintf("MJ::JOB::upsample::%d::%s", opts.Index, opts.Hash), nil
	case ActionZoomOut:
		switch opts.Level {
		case imagine.ZoomLevel2x, "":
			return fmt.Sprintf("MJ::Outpaint::50::1::%s::SOLO", opts.Hash), nil
		case imagine.ZoomLevel1_5x:
			return fmt.Sprintf("MJ::Outpaint::75::1::%s::SOLO", opts.Hash), nil
		case imagine.ZoomLevelHigh:
			return fmt.Sprintf("MJ::JOB::high_variation::1::%s::SOLO", opts.Hash), nil
		case imagine.ZoomLevelLow:
			return fmt.Sprintf("MJ::JOB::low_variation::1::%s::SOLO", opts.Hash), nil
		}
		return "", fmt.Errorf("unsupported zoom level %q", opts.Level)
	}
	return "", fmt.Errorf("action %q has no component id", action)
}

// extractHash returns the job hash embedded in an attachment name,
// e.g. "user_a_red_fox_0f1e2d3c-aaaa-bbbb.png" -> "0f1e2d3c-aaaa-bbbb".
func extractHash(filename string) string {
	if filename == "" {
		return ""
	}
	base := path.Base(strings.SplitN(filename, "?", 2)[0])
	idx := strings.LastIndex(base, "_")
	if idx < 0 || idx == len(base)-1 {
		return ""
	}
	hash := base[idx+1:]
	return strings.TrimSuffix(hash, path.Ext(hash))
}

// parseProgress returns "NN%" when the content carries a progress marker.
func parseProgress(content string) string {
	m := progressPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1] + "%"
}

// extractPrompt returns the bold prompt echoed back in a bot message.
func extractPrompt(content string) string {
	m := promptPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return normalizePrompt(m[1])
}

func normalizePrompt(prompt string) string {
	return strings.ToLower(strings.TrimSpace(spacePattern.ReplaceAllString(prompt, " ")))
}

// nonceString decodes a nonce that may arrive as a JSON string or number.
func nonceString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func isPending(content string) bool {
	return parseProgress(content) != "" ||
		strings.Contains(content, "(Waiting to start)") ||
		strings.Contains(content, "(Stopped)")
}

// isFinished reports whether msg is a finished job result.
func isFinished(msg *message) bool {
	return len(msg.Attachments) > 0 && !isPending(msg.Content)
}

// embedError returns the failure carried by a red embed, if any.
func embedError(msg *message) error {
	for _, e := range msg.Embeds {
		if e.Color == errorEmbedColor {
			return fmt.Errorf("%w: %s: %s", ErrJobFailed, e.Title, e.Description)
		}
	}
	return nil
}

func flattenOptions(components []component) []imagine.MessageOption {
	var out []imagine.MessageOption
	for _, row := range components {
		for _, c := range row.Components {
			if c.CustomID == "" {
				continue
			}
			label := c.Label
			if label == "" && c.Emoji != nil {
				label = c.Emoji.Name
			}
			out = append(out, imagine.MessageOption{Label: label, CustomID: c.CustomID})
		}
	}
	return out
}

// toImagineMessage converts a finished bot message into the domain shape.
func toImagineMessage(msg *message, progress string) *imagine.Message {
	out := &imagine.Message{
		ID:       msg.ID,
		Flags:    msg.Flags,
		Content:  msg.Content,
		Progress: progress,
		Options:  flattenOptions(msg.Components),
	}
	if len(msg.Attachments) > 0 {
		a := msg.Attachments[0]
		out.URI = a.URL
		out.ProxyURI = a.ProxyURL
		out.Width = a.Width
		out.Height = a.Height
		out.Hash = extractHash(a.Filename)
		if out.Hash == "" {
			out.Hash = extractHash(a.URL)
		}
	}
	return out
}
