package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// DefaultSessionTitle doubles as the auto-title marker: a session is retitled after its
	// first reply only while the title still equals this literal.
	DefaultSessionTitle = "New Chat"

	SessionTitleMaxChars   = 50
	SessionPreviewMaxChars = 50
)

const (
	EventUserRegistered     = "USER_REGISTERED"
	EventUserLogin          = "USER_LOGIN"
	EventChatSessionCreated = "CHAT_SESSION_CREATED"
	EventChatSessionDeleted = "CHAT_SESSION_DELETED"
	EventChatMessageSent    = "CHAT_MESSAGE_SENT"
)
