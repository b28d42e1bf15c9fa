package otp

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/docucare-api/internal/domain"
	"github.com/docucare-api/internal/infrastructure/otpstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSvc() (*Service, *otpstore.Memory) {
	store := otpstore.NewMemory()
	return NewService(store), store
}

func TestIssueThenVerify_SucceedsExactlyOnce(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	rec, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, "a@x.com", rec.Code))

	// Replay of the consumed code fails as not-found.
	err = svc.Verify(ctx, "a@x.com", rec.Code)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerify_FormatGateRunsBeforeStore(t *testing.T) {
	svc, store := newSvc()
	ctx := context.Background()

	rec, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	for _, bad := range []string{"", "12345", "1234567"} {
		err := svc.Verify(ctx, "a@x.com", bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, "code %q", bad)
	}

	// The record was never touched.
	got, err := store.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, rec.Code, got.Code)
}

func TestVerify_MismatchKeepsRecordForRetry(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	rec, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == rec.Code {
		wrong = "000001"
	}
	err = svc.Verify(ctx, "a@x.com", wrong)
	assert.ErrorIs(t, err, ErrMismatch)

	// Retry with the right code still works.
	require.NoError(t, svc.Verify(ctx, "a@x.com", rec.Code))
}

func TestVerify_UnknownKey(t *testing.T) {
	svc, _ := newSvc()
	err := svc.Verify(context.Background(), "nobody@x.com", "123456")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerify_ExpiredRecordIsPurged(t *testing.T) {
	svc, store := newSvc()
	ctx := context.Background()

	rec := &domain.LoginOTP{
		Key:       "a@x.com",
		Code:      "654321",
		ExpiresAt: time.Now().Add(-time.Second),
	}
	require.NoError(t, store.Put(ctx, rec))

	err := svc.Verify(ctx, "a@x.com", "654321")
	assert.ErrorIs(t, err, ErrExpired)

	// The purge is a side effect: the correct code now reports not-found.
	err = svc.Verify(ctx, "a@x.com", "654321")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVerify_AtExpiryInstantStillPasses(t *testing.T) {
	svc, store := newSvc()
	ctx := context.Background()

	// Far enough in the future that "now" cannot pass it mid-test.
	rec := &domain.LoginOTP{
		Key:       "a@x.com",
		Code:      "111222",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, store.Put(ctx, rec))
	assert.NoError(t, svc.Verify(ctx, "a@x.com", "111222"))
}

func TestIssue_ReissueInvalidatesPriorCode(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	first, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	second, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	if first.Code != second.Code {
		err = svc.Verify(ctx, "a@x.com", first.Code)
		assert.ErrorIs(t, err, ErrMismatch)
	}
	require.NoError(t, svc.Verify(ctx, "a@x.com", second.Code))
}

func TestIssue_EmptyKeyRejected(t *testing.T) {
	svc, _ := newSvc()
	_, err := svc.Issue(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestIssue_DistinctKeysDoNotInterfere(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	a, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	b, err := svc.Issue(ctx, "b@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, "a@x.com", a.Code))
	require.NoError(t, svc.Verify(ctx, "b@x.com", b.Code))
}

func TestGenerateCode_SixDigitsNoLeadingZero(t *testing.T) {
	for i := 0; i < 2000; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestConcurrentVerify_SameKeySingleWinner(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	rec, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Verify(ctx, "a@x.com", rec.Code)
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.True(t, errors.Is(err, domain.ErrNotFound))
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent verify may consume the code")
}
