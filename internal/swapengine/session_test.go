package swapengine

import (
	"fmt"
	"testing"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/deepbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionIntent(amount string) *SwapIntent {
	return &SwapIntent{
		Pool:        quoteTestPool(),
		Direction:   deepbook.BaseToQuote,
		Amount:      amount,
		SlippagePct: 1,
		RequestedAt: time.Now().UTC(),
	}
}

func sessionQuote(amount string) *deepbook.Quote {
	return &deepbook.Quote{
		PoolID:       "0xpool",
		Direction:    deepbook.BaseToQuote,
		InputAmount:  amount,
		EstimatedOut: 5.0,
		Rate:         2.0,
		QuotedAt:     time.Now().UTC(),
	}
}

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateIdle, s.State())

	gen, err := s.Edit(sessionIntent("2.5"))
	require.NoError(t, err)
	assert.Equal(t, StateQuoting, s.State())

	require.True(t, s.ApplyQuote(gen, sessionQuote("2.5"), nil))
	assert.Equal(t, StateQuoted, s.State())
	require.NotNil(t, s.Quote())

	intent, quote, err := s.BeginAttempt()
	require.NoError(t, err)
	assert.Equal(t, "2.5", intent.Amount)
	assert.Equal(t, "2.5", quote.InputAmount)
	assert.Equal(t, StateBuilding, s.State())

	s.MarkSubmitted()
	assert.Equal(t, StateSubmitted, s.State())

	s.Finish(nil)
	assert.Equal(t, StateConfirmed, s.State())
	assert.Nil(t, s.Quote())

	s.Reset()
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_FailedAttemptIsTerminal(t *testing.T) {
	s := NewSession()

	gen, err := s.Edit(sessionIntent("1"))
	require.NoError(t, err)
	require.True(t, s.ApplyQuote(gen, sessionQuote("1"), nil))

	_, _, err = s.BeginAttempt()
	require.NoError(t, err)
	s.MarkSubmitted()

	s.Finish(fmt.Errorf("execution reverted"))
	assert.Equal(t, StateFailed, s.State())
	assert.Nil(t, s.Quote())

	// A fresh cycle starts from Idle.
	s.Reset()
	_, err = s.Edit(sessionIntent("2"))
	assert.NoError(t, err)
}

func TestSession_EditBlockedWhileInFlight(t *testing.T) {
	s := NewSession()

	gen, err := s.Edit(sessionIntent("1"))
	require.NoError(t, err)
	require.True(t, s.ApplyQuote(gen, sessionQuote("1"), nil))

	_, _, err = s.BeginAttempt()
	require.NoError(t, err)

	_, err = s.Edit(sessionIntent("2"))
	assert.ErrorIs(t, err, ErrAttemptInFlight)

	s.MarkSubmitted()
	_, err = s.Edit(sessionIntent("2"))
	assert.ErrorIs(t, err, ErrAttemptInFlight)

	// Starting a second attempt is blocked too.
	_, _, err = s.BeginAttempt()
	assert.ErrorIs(t, err, ErrAttemptInFlight)

	// Once finished, edits flow again.
	s.Finish(nil)
	s.Reset()
	_, err = s.Edit(sessionIntent("3"))
	assert.NoError(t, err)
}

func TestSession_EditSupersedesQuote(t *testing.T) {
	s := NewSession()

	gen1, err := s.Edit(sessionIntent("1"))
	require.NoError(t, err)
	require.True(t, s.ApplyQuote(gen1, sessionQuote("1"), nil))
	require.NotNil(t, s.Quote())

	// Editing clears the displayed estimate immediately.
	gen2, err := s.Edit(sessionIntent("2"))
	require.NoError(t, err)
	assert.Nil(t, s.Quote())
	assert.Equal(t, StateQuoting, s.State())
	assert.Greater(t, gen2, gen1)

	// The old generation's result no longer applies.
	assert.False(t, s.ApplyQuote(gen1, sessionQuote("1"), nil))
	assert.Nil(t, s.Quote())
}

func TestSession_FailedQuoteClearsEstimate(t *testing.T) {
	s := NewSession()

	gen, err := s.Edit(sessionIntent("1"))
	require.NoError(t, err)

	require.True(t, s.ApplyQuote(gen, nil, ErrNoQuote))
	assert.Nil(t, s.Quote())
	assert.Equal(t, StateIdle, s.State())
}

func TestSession_BeginAttemptRequiresQuote(t *testing.T) {
	s := NewSession()

	_, _, err := s.BeginAttempt()
	var verr *deepbook.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = s.Edit(sessionIntent("1"))
	require.NoError(t, err)

	// Still quoting, no estimate yet.
	_, _, err = s.BeginAttempt()
	assert.ErrorAs(t, err, &verr)
}

func TestSession_ResetOnlyFromTerminalStates(t *testing.T) {
	s := NewSession()

	gen, err := s.Edit(sessionIntent("1"))
	require.NoError(t, err)
	require.True(t, s.ApplyQuote(gen, sessionQuote("1"), nil))

	// Reset is a no-op outside Confirmed/Failed.
	s.Reset()
	assert.Equal(t, StateQuoted, s.State())
}
