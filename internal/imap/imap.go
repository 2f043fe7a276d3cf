package imap

import (
	"io"
	"time"
)

type Client interface {
	Connect(server string) error
	Login(user, password string) error
	SelectMailbox(name string) error
	ListUIDs(since time.Duration) ([]uint32, error)
	FetchMessage(uid uint32) (io.Reader, error)
	Close() error
}
