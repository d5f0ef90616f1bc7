package message

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/edupaziani/trampo-conecta-talentos/internal/logger"
)

func TestOutbox_LogsAndRetains(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core).Sugar())

	o := NewOutbox(2)
	for _, subj := range []string{"a", "b", "c"} {
		if err := o.EnqueueEmail(ctx, Email{To: []string{" rh@acme.com "}, Subject: subj}); err != nil {
			t.Fatalf("EnqueueEmail: %v", err)
		}
	}

	got := o.Recent()
	if len(got) != 2 || got[0].Subject != "b" || got[1].Subject != "c" {
		t.Fatalf("Recent = %+v", got)
	}
	if got[0].To[0] != "rh@acme.com" {
		t.Fatalf("recipient not trimmed: %q", got[0].To[0])
	}
	if n := logs.FilterMessage("email queued").Len(); n != 3 {
		t.Fatalf("logged %d emails", n)
	}
}

func TestOutbox_NoRecipient(t *testing.T) {
	o := NewOutbox(1)
	err := o.EnqueueEmail(context.Background(), Email{To: []string{"  "}})
	if !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("err = %v", err)
	}
	if len(o.Recent()) != 0 {
		t.Fatal("rejected email retained")
	}
}
