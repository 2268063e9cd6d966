package treatments

import (
	"context"
	"fmt"
	"strings"

	"dulce-dosis-web/internal/domain/activity"
	"dulce-dosis-web/internal/ports/session"

	"golang.org/x/sync/singleflight"
)

type Service struct {
	gw       Gateway
	activity activity.Recorder // opcional

	// dos POST de eliminar del mismo id y la misma sesión en vuelo => un solo DELETE
	deletes singleflight.Group
}

func NewService(gw Gateway, rec activity.Recorder) *Service {
	return &Service{gw: gw, activity: rec}
}

func (s *Service) List(ctx context.Context, st session.State) ([]Treatment, error) {
	return s.gw.List(ctx, st.Token)
}

func (s *Service) Get(ctx context.Context, st session.State, id string) (Treatment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Treatment{}, ErrInvalidInput
	}
	return s.gw.Get(ctx, st.Token, id)
}

// Save valida el grupo de campos del modo, limpia los demás y crea o actualiza.
func (s *Service) Save(ctx context.Context, st session.State, t Treatment) (Treatment, error) {
	if err := t.Validate(); err != nil {
		return Treatment{}, err
	}
	t = t.Normalize()

	var (
		saved Treatment
		err   error
	)
	if t.ID.IsZero() {
		saved, err = s.gw.Create(ctx, st.Token, t)
	} else {
		saved, err = s.gw.Update(ctx, st.Token, t)
	}
	if err != nil {
		return Treatment{}, fmt.Errorf("treatments: save: %w", err)
	}

	s.record(ctx, activity.RecordInput{
		UserID:  st.User.ID,
		Kind:    activity.KindTreatmentSaved,
		Subject: saved.ID.String(),
		Detail:  saved.PillName,
	})
	return saved, nil
}

// Delete elimina por id. No reintenta.
func (s *Service) Delete(ctx context.Context, st session.State, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	// la llamada compartida no depende de que el primer request siga vivo
	callCtx := context.WithoutCancel(ctx)
	_, err, _ := s.deletes.Do(deleteKey(st.Token, id), func() (any, error) {
		return nil, s.gw.Delete(callCtx, st.Token, id)
	})

	kind := activity.KindTreatmentDeleted
	detail := ""
	if err != nil {
		kind = activity.KindTreatmentDeleteFail
		detail = err.Error()
	}
	s.record(ctx, activity.RecordInput{UserID: st.User.ID, Kind: kind, Subject: id, Detail: detail})

	if err != nil {
		return fmt.Errorf("treatments: delete %s: %w", id, err)
	}
	return nil
}

func deleteKey(token, id string) string {
	return token + "\x00" + id
}

func (s *Service) record(ctx context.Context, in activity.RecordInput) {
	if s.activity == nil {
		return
	}
	_, _ = s.activity.Record(ctx, in)
}
