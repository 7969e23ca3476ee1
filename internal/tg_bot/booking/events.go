package booking

// Event is one inbound user action, already stripped of any transport
// detail. The set of variants is closed: the machine dispatches over it
// with a type switch.
type Event interface{ event() }

// TextInput is a plain text message from the user.
type TextInput struct {
	ChatID int64
	Text   string
}

// ContactShared carries a phone number shared via the contact button.
type ContactShared struct {
	ChatID int64
	Phone  string
}

// ChoiceSelected carries the opaque token of a pressed inline button.
type ChoiceSelected struct {
	ChatID int64
	Token  string
}

func (TextInput) event()      {}
func (ContactShared) event()  {}
func (ChoiceSelected) event() {}

// Effect is one outbound consequence of a transition, to be realized by
// the presentation adapter.
type Effect interface{ effect() }

// Choice is a selectable option of a prompt.
type Choice struct {
	Label string
	Token string
}

// Prompt asks the user something, optionally with selectable choices.
// A non-empty ContactLabel requests a phone-sharing reply keyboard
// instead of inline choices.
type Prompt struct {
	ChatID       int64
	Text         string
	Choices      []Choice
	ContactLabel string
}

// Notify is a completed-booking summary for the operator destination.
type Notify struct {
	Text string
}

func (Prompt) effect() {}
func (Notify) effect() {}
