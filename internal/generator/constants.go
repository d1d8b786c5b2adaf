package generator

import "time"

// Request bounds
const (
	MinPortions           = 1
	MaxPortions           = 10
	MinDays               = 1
	MaxDays               = 7
	MinCookingTime        = 1
	DefaultMaxCookingTime = 180
	RecipesPerReply       = 3
)

// Reply defaults
const (
	DefaultTitle       = "Untitled Recipe"
	DefaultCookingTime = 30
)

// Client defaults
const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.95
	DefaultMaxTokens   = 2400
	DefaultHTTPTimeout = 60 * time.Second
	logReplyPreview    = 120
)

// Pantry staples always offered to the model
var Constants = []string{"water", "oil", "salt", "pepper"}

// Error messages
const (
	ErrMsgMarshalPayload = "marshal payload"
	ErrMsgCreateRequest  = "create request"
	ErrMsgRequestFailed  = "request failed"
	ErrMsgReadResponse   = "read response"
	ErrMsgAPIStatus      = "API returned %s"
	ErrMsgUnmarshalReply = "unmarshal response"
	ErrMsgEmptyChoices   = "empty response (no choices)"
	ErrMsgNoJSONObject   = "reply contains no JSON object"
	ErrMsgWrongCount     = "expected %d recipes, got %d"
	ErrMsgInvalidRecipe  = "recipe %d is invalid: %w"
	ErrMsgInvalidRequest = "invalid generation request"
	ErrMsgMarshalRequest = "marshal generation request"
)

// Log messages
const (
	LogMsgChatRequest      = "Sending chat completion request"
	LogMsgChatReply        = "Received chat completion reply"
	LogMsgParseRetry       = "Reply is not a bare JSON object, extracting embedded object"
	LogMsgGenerationFailed = "Recipe generation failed"
	LogMsgGenerated        = "Recipes generated"
)
