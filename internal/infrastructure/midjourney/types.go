package midjourney

import "encoding/json"

// Gateway opcodes used by the client.
const (
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatACK   = 11
)

// Dispatch event names the tracker cares about.
const (
	eventReady              = "READY"
	eventMessageCreate      = "MESSAGE_CREATE"
	eventMessageUpdate      = "MESSAGE_UPDATE"
	eventInteractionCreate  = "INTERACTION_CREATE"
	eventInteractionSuccess = "INTERACTION_SUCCESS"
	eventInteractionFailure = "INTERACTION_FAILURE"
)

// Interaction types.
const (
	interactionApplicationCommand = 2
	interactionMessageComponent   = 3
)

// errorEmbedColor is the red used by the bot for failed jobs.
const errorEmbedColor = 16711680

type gatewayPayload struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d,omitempty"`
	S  *int64          `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

type helloData struct {
	HeartbeatInterval int64 `json:"heartbeat_interval"`
}

type readyData struct {
	SessionID string `json:"session_id"`
	User      user   `json:"user"`
}

type identifyData struct {
	Token        string             `json:"token"`
	Capabilities int                `json:"capabilities"`
	Properties   identifyProperties `json:"properties"`
	Compress     bool               `json:"compress"`
}

type identifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

type interactionEvent struct {
	ID    string `json:"id"`
	Nonce string `json:"nonce"`
}

type user struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	ProxyURL string `json:"proxy_url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type component struct {
	Type       int         `json:"type"`
	CustomID   string      `json:"custom_id,omitempty"`
	Label      string      `json:"label,omitempty"`
	Emoji      *emoji      `json:"emoji,omitempty"`
	Components []component `json:"components,omitempty"`
}

type emoji struct {
	Name string `json:"name"`
}

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

type messageReference struct {
	MessageID string `json:"message_id"`
	ChannelID string `json:"channel_id"`
}

type interactionMetadata struct {
	ID string `json:"id"`
}

type message struct {
	ID                  string               `json:"id"`
	ChannelID           string               `json:"channel_id"`
	Author              *user                `json:"author,omitempty"`
	Content             string               `json:"content"`
	Nonce               json.RawMessage      `json:"nonce,omitempty"`
	Flags               int                  `json:"flags"`
	Attachments         []attachment         `json:"attachments"`
	Components          []component          `json:"components"`
	Embeds              []embed              `json:"embeds"`
	MessageReference    *messageReference    `json:"message_reference,omitempty"`
	Interaction         *interactionMetadata `json:"interaction,omitempty"`
	InteractionMetadata *interactionMetadata `json:"interaction_metadata,omitempty"`
}

// applicationCommand is an entry from the application command search endpoint.
type applicationCommand struct {
	ID            string          `json:"id"`
	ApplicationID string          `json:"application_id"`
	Version       string          `json:"version"`
	Name          string          `json:"name"`
	Raw           json.RawMessage `json:"-"`
}

type interactionRequest struct {
	Type          int             `json:"type"`
	ApplicationID string          `json:"application_id"`
	GuildID       string          `json:"guild_id"`
	ChannelID     string          `json:"channel_id"`
	SessionID     string          `json:"session_id"`
	Nonce         string          `json:"nonce"`
	MessageFlags  *int            `json:"message_flags,omitempty"`
	MessageID     string          `json:"message_id,omitempty"`
	Data          json.RawMessage `json:"data"`
}

type commandOption struct {
	Type  int    `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type commandData struct {
	Version            string          `json:"version"`
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Type               int             `json:"type"`
	Options            []commandOption `json:"options"`
	ApplicationCommand json.RawMessage `json:"application_command"`
	Attachments        []any           `json:"attachments"`
}

type componentData struct {
	ComponentType int    `json:"component_type"`
	CustomID      string `json:"custom_id"`
}
