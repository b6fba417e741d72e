package protocol

// Kind discriminates server-to-client frames.
type Kind int

const (
	KindOK Kind = iota
	KindError
	KindChat
	KindNewNick
	KindJoined
	KindLeft
	KindBye
)

// Message is one outbound frame. It is immutable once constructed.
// For KindNewNick, Sender holds the old nickname and Body the new one.
type Message struct {
	Kind   Kind
	Sender string
	Body   string
}

func OK() Message    { return Message{Kind: KindOK} }
func Error() Message { return Message{Kind: KindError} }
func Bye() Message   { return Message{Kind: KindBye} }

func Chat(sender, text string) Message {
	return Message{Kind: KindChat, Sender: sender, Body: text}
}

func Joined(user string) Message { return Message{Kind: KindJoined, Sender: user} }
func Left(user string) Message   { return Message{Kind: KindLeft, Sender: user} }

func NewNick(old, new string) Message {
	return Message{Kind: KindNewNick, Sender: old, Body: new}
}

// Encode renders the frame as exactly one newline-terminated line.
func (m Message) Encode() string {
	switch m.Kind {
	case KindOK:
		return "OK\n"
	case KindError:
		return "ERROR\n"
	case KindChat:
		return "MESSAGE " + m.Sender + " " + m.Body + "\n"
	case KindNewNick:
		return "NEWNICK " + m.Sender + " " + m.Body + "\n"
	case KindJoined:
		return "JOINED " + m.Sender + "\n"
	case KindLeft:
		return "LEFT " + m.Sender + "\n"
	case KindBye:
		return "BYE\n"
	}
	return ""
}
