package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAndAutoDismiss(t *testing.T) {
	n := New(40 * time.Millisecond)

	first := n.Success("Więzień dodany")
	second := n.Error("Błąd: Cell is full")
	require.NotEqual(t, first.ID, second.ID)

	active := n.Active()
	require.Len(t, active, 2)
	assert.Equal(t, KindSuccess, active[0].Kind)
	assert.Equal(t, "Błąd: Cell is full", active[1].Message)

	assert.Eventually(t, func() bool { return len(n.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestDismiss(t *testing.T) {
	n := New(time.Hour)
	a := n.Info("a")
	b := n.Info("b")
	c := n.Info("c")

	n.Dismiss(b.ID)
	n.Dismiss("missing")

	active := n.Active()
	require.Len(t, active, 2)
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, c.ID, active[1].ID)
}

func TestChangeChSignals(t *testing.T) {
	n := New(time.Hour)
	n.Info("hello")

	select {
	case <-n.ChangeCh():
	case <-time.After(time.Second):
		t.Fatal("expected change notification")
	}
}
