package control

import (
	"context"
	"errors"
	"sync"
	"testing"

	"trykey-dashboard/internal/application/pending"
	"trykey-dashboard/internal/domain"
	"trykey-dashboard/internal/trykey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	mu      sync.Mutex
	message string
	err     error
	sent    []domain.ControlCommand
	block   chan struct{} // when set, SendControl waits until closed
	started chan struct{} // closed once SendControl has begun
}

func (s *stubSender) SendControl(ctx context.Context, cmd domain.ControlCommand) (string, error) {
	if s.started != nil {
		close(s.started)
		s.started = nil
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.sent = append(s.sent, cmd)
	s.mu.Unlock()
	return s.message, s.err
}

type stubCache struct {
	invalidated []string
}

func (c *stubCache) Invalidate(ctx context.Context, assetNumber string) error {
	c.invalidated = append(c.invalidated, assetNumber)
	return nil
}

func TestToggle(t *testing.T) {
	assert.Equal(t, domain.ControlTurnOff, Toggle(domain.Room{Status: true}))
	assert.Equal(t, domain.ControlTurnOn, Toggle(domain.Room{Status: false}))
}

func TestDispatch_TogglesAgainstCurrentState(t *testing.T) {
	sender := &stubSender{message: trykey.ControlSuccessMessage}
	svc := &Service{Client: sender, Pending: pending.NewRegistry()}

	_, err := svc.Dispatch(context.Background(), "KD123", domain.Room{RoomNumber: "12", Status: true}, domain.ActionElectricity)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, domain.ControlTurnOff, sender.sent[0].Data)

	_, err = svc.Dispatch(context.Background(), "KD123", domain.Room{RoomNumber: "12", Status: false}, domain.ActionElectricity)
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, domain.ControlTurnOn, sender.sent[1].Data)
}

func TestDispatch_NoticeNamesRoomAndAction(t *testing.T) {
	sender := &stubSender{message: trykey.ControlSuccessMessage}
	svc := &Service{Client: sender, Pending: pending.NewRegistry()}

	result, err := svc.Dispatch(context.Background(), "KD123", domain.Room{RoomNumber: "12", Status: false}, domain.ActionElectricity)
	require.NoError(t, err)
	assert.Contains(t, result.Notice, "Room 12")
	assert.Contains(t, result.Notice, "turn on")
}

func TestDispatch_UnexpectedMessageIsError(t *testing.T) {
	sender := &stubSender{message: "Command queued"}
	svc := &Service{Client: sender, Pending: pending.NewRegistry()}

	result, err := svc.Dispatch(context.Background(), "KD123", domain.Room{RoomNumber: "7"}, domain.ActionDoor)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedResponse))
}

func TestDispatch_InvalidActionType(t *testing.T) {
	sender := &stubSender{message: trykey.ControlSuccessMessage}
	svc := &Service{Client: sender, Pending: pending.NewRegistry()}

	_, err := svc.Dispatch(context.Background(), "KD123", domain.Room{RoomNumber: "7"}, "thermostat")
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestDispatch_RejectsDuplicateWhileInFlight(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	sender := &stubSender{message: trykey.ControlSuccessMessage, block: block, started: started}
	svc := &Service{Client: sender, Pending: pending.NewRegistry()}

	room := domain.Room{RoomNumber: "12"}
	done := make(chan error, 1)
	go func() {
		_, err := svc.Dispatch(context.Background(), "KD123", room, domain.ActionElectricity)
		done <- err
	}()

	<-started
	_, err := svc.Dispatch(context.Background(), "KD123", room, domain.ActionElectricity)
	assert.Equal(t, ErrCommandPending, err)

	close(block)
	require.NoError(t, <-done)

	// Registry is released after completion
	_, err = svc.Dispatch(context.Background(), "KD123", room, domain.ActionElectricity)
	require.NoError(t, err)
}

func TestDispatch_InvalidatesRoomsCache(t *testing.T) {
	sender := &stubSender{message: trykey.ControlSuccessMessage}
	cache := &stubCache{}
	svc := &Service{Client: sender, Pending: pending.NewRegistry(), Rooms: cache}

	_, err := svc.Dispatch(context.Background(), "KD123", domain.Room{RoomNumber: "3"}, domain.ActionIgnition)
	require.NoError(t, err)
	assert.Equal(t, []string{"KD123"}, cache.invalidated)
}

func TestDispatch_NoInvalidationOnFailure(t *testing.T) {
	sender := &stubSender{err: errors.New("upstream down")}
	cache := &stubCache{}
	svc := &Service{Client: sender, Pending: pending.NewRegistry(), Rooms: cache}

	_, err := svc.Dispatch(context.Background(), "KD123", domain.Room{RoomNumber: "3"}, domain.ActionIgnition)
	require.Error(t, err)
	assert.Empty(t, cache.invalidated)
}
