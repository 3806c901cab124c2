package interfaces

// SessionStore keeps live sessions keyed by bearer token
type SessionStore[S any] interface {
	Save(token string, session S) error
	Get(token string) (S, bool)
	Delete(token string) (S, bool)
	List() []S
	Len() int
}
