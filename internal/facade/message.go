package facade

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is returned by NormalizeMessage for arguments it cannot
// interpret.
var ErrMalformedInput = errors.New("malformed input")

// MessageOptions configures how a message is shown.
type MessageOptions struct {
	Modal bool
}

// MessageItem is an action offered alongside a message.
type MessageItem struct {
	Title string
}

// Message is the normalized form of a notify call.
type Message struct {
	Message     string
	IsModal     bool
	ActionItems []string
}

// NormalizeMessage folds the variadic notify arguments into a Message. rest is
// either a sequence of items (string, MessageItem, []string, []MessageItem)
// or a MessageOptions followed by items.
func NormalizeMessage(message string, rest ...interface{}) (Message, error) {
	msg := Message{Message: message, ActionItems: []string{}}
	for i, arg := range rest {
		switch v := arg.(type) {
		case MessageOptions:
			if i != 0 {
				return Message{}, fmt.Errorf("%w: options must precede items (argument %d)", ErrMalformedInput, i+1)
			}
			msg.IsModal = v.Modal
		case *MessageOptions:
			if i != 0 || v == nil {
				return Message{}, fmt.Errorf("%w: options must precede items (argument %d)", ErrMalformedInput, i+1)
			}
			msg.IsModal = v.Modal
		case string:
			msg.ActionItems = append(msg.ActionItems, v)
		case MessageItem:
			msg.ActionItems = append(msg.ActionItems, v.Title)
		case *MessageItem:
			if v == nil {
				return Message{}, fmt.Errorf("%w: nil item (argument %d)", ErrMalformedInput, i+1)
			}
			msg.ActionItems = append(msg.ActionItems, v.Title)
		case []string:
			msg.ActionItems = append(msg.ActionItems, v...)
		case []MessageItem:
			for _, item := range v {
				msg.ActionItems = append(msg.ActionItems, item.Title)
			}
		default:
			return Message{}, fmt.Errorf("%w: unsupported argument %d of type %T", ErrMalformedInput, i+1, arg)
		}
	}
	return msg, nil
}
