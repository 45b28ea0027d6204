package kakao

// Response envelope builders for the Kakao skill v2.0 schema.
// The platform always receives exactly this shape; handlers only decide
// which outputs and quick replies go inside it.

// ResponseVersion is the skill response schema version.
const ResponseVersion = "2.0"

// Response is the outbound skill reply envelope.
type Response struct {
	Version  string   `json:"version"`
	Template Template `json:"template"`
}

// Template holds the reply outputs and quick replies.
type Template struct {
	Outputs      []Output     `json:"outputs"`
	QuickReplies []QuickReply `json:"quickReplies,omitempty"`
}

// Output is a single reply element. Exactly one field is set.
type Output struct {
	SimpleText *SimpleText `json:"simpleText,omitempty"`
	TextCard   *Card       `json:"textCard,omitempty"`
	BasicCard  *Card       `json:"basicCard,omitempty"`
	Carousel   *Carousel   `json:"carousel,omitempty"`
}

// SimpleText is a plain text bubble.
type SimpleText struct {
	Text string `json:"text"`
}

// Thumbnail is a card header image.
type Thumbnail struct {
	ImageURL string `json:"imageUrl"`
}

// Button is a card action button.
type Button struct {
	Label       string `json:"label"`
	Action      string `json:"action"`
	MessageText string `json:"messageText,omitempty"`
	WebLinkURL  string `json:"webLinkUrl,omitempty"`
}

// Card is a textCard or basicCard body; the two share the same fields.
type Card struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Thumbnail   *Thumbnail `json:"thumbnail,omitempty"`
	Buttons     []Button   `json:"buttons,omitempty"`
}

// Carousel is a horizontally scrollable list of cards.
type Carousel struct {
	Type  string `json:"type"` // "textCard" or "basicCard"
	Items []Card `json:"items"`
}

// QuickReply is a suggestion chip under the reply.
type QuickReply struct {
	Label       string `json:"label"`
	Action      string `json:"action"`
	MessageText string `json:"messageText,omitempty"`
}

// NewQuickReply creates a message-type quick reply. An empty messageText
// falls back to the label.
func NewQuickReply(label, messageText string) QuickReply {
	if messageText == "" {
		messageText = label
	}
	return QuickReply{
		Label:       label,
		Action:      "message",
		MessageText: messageText,
	}
}

// NewSimpleTextResponse wraps plain text in the reply envelope.
func NewSimpleTextResponse(text string, quickReplies ...QuickReply) Response {
	return Response{
		Version: ResponseVersion,
		Template: Template{
			Outputs:      []Output{{SimpleText: &SimpleText{Text: text}}},
			QuickReplies: quickReplies,
		},
	}
}

// NewTextCardResponse wraps a single text card in the reply envelope.
func NewTextCardResponse(card Card, quickReplies ...QuickReply) Response {
	return Response{
		Version: ResponseVersion,
		Template: Template{
			Outputs:      []Output{{TextCard: &card}},
			QuickReplies: quickReplies,
		},
	}
}

// NewCarouselResponse wraps cards in a textCard carousel. A single card
// collapses to a plain text card, matching platform rendering rules.
func NewCarouselResponse(cards []Card, quickReplies ...QuickReply) Response {
	if len(cards) == 1 {
		return NewTextCardResponse(cards[0], quickReplies...)
	}
	return Response{
		Version: ResponseVersion,
		Template: Template{
			Outputs: []Output{{Carousel: &Carousel{
				Type:  "textCard",
				Items: cards,
			}}},
			QuickReplies: quickReplies,
		},
	}
}

// NewErrorResponse builds the error-style reply used for failed requests.
// Still a normal 2.0 envelope; the platform never sees an error page.
func NewErrorResponse(message string) Response {
	return NewSimpleTextResponse(
		message,
		NewQuickReply("도움말", "도움말"),
		NewQuickReply("오늘 급식", "오늘 급식 알려줘"),
	)
}
