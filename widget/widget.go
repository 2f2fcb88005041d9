// Package widget implements the chat widget's session logic: visibility
// state, the message transcript, and the send and reset flows against the
// assistant service.
package widget

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/linanwx/helpdock/assistant"
	"github.com/linanwx/helpdock/chatmd"
	"github.com/linanwx/helpdock/logger"
)

// Client is the part of the assistant service the controller uses.
type Client interface {
	Chat(ctx context.Context, message string) (string, error)
	Reset(ctx context.Context) error
}

// Role identifies who authored a message.
type Role int

const (
	RoleUser Role = iota
	RoleBot
)

func (r Role) String() string {
	if r == RoleUser {
		return "user"
	}
	return "bot"
}

// Message is one transcript entry.
type Message struct {
	ID      string
	Role    Role
	Raw     string
	Content chatmd.Content
	Pending bool // loading placeholder awaiting a reply
	Failed  bool // error notice standing in for a reply
}

// Texts are the fixed strings the controller puts into the transcript.
type Texts struct {
	Greeting      string
	ResetGreeting string
	Pending       string
	Unreachable   string // transport failure while sending
	ErrorPrefix   string // prepended to service-reported errors
	ServiceFailed string // used when the service gives no error text
}

// DefaultTexts returns the built-in strings.
func DefaultTexts() Texts {
	return Texts{
		Greeting: "👋 Hi! I'm the assistant for this site.\n\n" +
			"**I can help you:**\n" +
			"• find your way around the features\n" +
			"• answer questions about the system\n" +
			"• point you to step-by-step guide videos\n\n" +
			"Ask me anything!",
		ResetGreeting: "Chat session reset! You can start a new conversation.",
		Pending:       "⏳ Thinking...",
		Unreachable:   "Cannot reach the server. Please check that the assistant service is running.",
		ErrorPrefix:   "❌ ",
		ServiceFailed: "Something went wrong",
	}
}

func (t Texts) withDefaults() Texts {
	def := DefaultTexts()
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&t.Greeting, def.Greeting)
	fill(&t.ResetGreeting, def.ResetGreeting)
	fill(&t.Pending, def.Pending)
	fill(&t.Unreachable, def.Unreachable)
	fill(&t.ErrorPrefix, def.ErrorPrefix)
	fill(&t.ServiceFailed, def.ServiceFailed)
	return t
}

// Options configures a Controller.
type Options struct {
	Texts       Texts
	MaxMessages int    // transcript cap, oldest entries evicted first; 0 disables
	OnChange    func() // called after every transcript change, outside the lock
}

// Controller owns the widget session. It is safe for concurrent use.
type Controller struct {
	client Client

	mu         sync.Mutex
	texts      Texts
	maxLen     int
	onChange   func()
	visibility Visibility
	transcript []Message
	sending    bool
}

// New creates a hidden widget whose transcript holds the greeting.
func New(client Client, opts Options) *Controller {
	texts := opts.Texts.withDefaults()
	c := &Controller{
		client:     client,
		texts:      texts,
		maxLen:     opts.MaxMessages,
		onChange:   opts.OnChange,
		visibility: Hidden,
	}
	c.transcript = []Message{botMessage(texts.Greeting)}
	return c
}

// SetOnChange replaces the change hook.
func (c *Controller) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Transcript returns a copy of the current transcript.
func (c *Controller) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Sending reports whether a message is in flight.
func (c *Controller) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}

// SendMessage posts text to the service and blocks until the reply has been
// added to the transcript. It returns false without doing anything when the
// trimmed text is empty or another send is still in flight.
//
// Exactly one bot message is appended per accepted call: the formatted reply,
// the service's error, or the unreachable notice. The pending placeholder is
// removed first, by id, so a concurrent reset cannot make it remove the
// wrong entry.
func (c *Controller) SendMessage(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		logger.Debug("send dropped, request already in flight")
		return false
	}
	c.sending = true
	pending := botMessage(c.texts.Pending)
	pending.ID = uuid.NewString()
	pending.Pending = true
	c.appendLocked(userMessage(text))
	c.appendLocked(pending)
	c.mu.Unlock()
	c.changed()

	reply, err := c.client.Chat(ctx, text)

	c.mu.Lock()
	c.removeLocked(pending.ID)
	c.appendLocked(c.replyLocked(reply, err))
	c.sending = false
	c.mu.Unlock()
	c.changed()
	return true
}

// ResetSession asks the service for a fresh conversation. Only on success is
// the transcript replaced with the reset greeting; on failure it is left as
// it was and the error is logged and returned.
func (c *Controller) ResetSession(ctx context.Context) error {
	if err := c.client.Reset(ctx); err != nil {
		logger.Warn("reset chat failed", "err", err)
		return err
	}

	c.mu.Lock()
	c.transcript = []Message{botMessage(c.texts.ResetGreeting)}
	c.mu.Unlock()
	logger.Info("chat session reset")
	c.changed()
	return nil
}

func (c *Controller) replyLocked(reply string, err error) Message {
	if err == nil {
		return botMessage(reply)
	}

	var serr *assistant.ServiceError
	if errors.As(err, &serr) {
		logger.Warn("assistant reported an error", "status", serr.Status, "err", serr.Message)
		msg := serr.Message
		if msg == "" {
			msg = c.texts.ServiceFailed
		}
		m := botMessage(c.texts.ErrorPrefix + msg)
		m.Failed = true
		return m
	}

	logger.Error("assistant unreachable", "err", err)
	m := botMessage(c.texts.Unreachable)
	m.Failed = true
	return m
}

func (c *Controller) appendLocked(m Message) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	c.transcript = append(c.transcript, m)
	if c.maxLen > 0 && len(c.transcript) > c.maxLen {
		c.transcript = append([]Message(nil), c.transcript[len(c.transcript)-c.maxLen:]...)
	}
}

func (c *Controller) removeLocked(id string) {
	for i, m := range c.transcript {
		if m.ID == id {
			c.transcript = append(c.transcript[:i], c.transcript[i+1:]...)
			return
		}
	}
}

func (c *Controller) changed() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func botMessage(raw string) Message {
	return Message{ID: uuid.NewString(), Role: RoleBot, Raw: raw, Content: chatmd.Convert(raw)}
}

func userMessage(raw string) Message {
	return Message{ID: uuid.NewString(), Role: RoleUser, Raw: raw, Content: chatmd.Plain(raw)}
}
