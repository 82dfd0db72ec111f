package state_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/state"
	"github.com/nhle/zero-hour/internal/store"
	"github.com/nhle/zero-hour/tests/testutil"
)

func goal(name string) state.ItemInput {
	return state.ItemInput{Name: name, Date: "2025-02-01", Category: "Personal"}
}

func TestLoginNormalizesAndValidates(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	m, _ := newManager(t, s, model.VariantGoals)

	var verr *state.ValidationError
	if err := m.Login(ctx, " ab "); !errors.As(err, &verr) {
		t.Fatalf("Login(short) error = %v, want ValidationError", err)
	}
	if m.UserCode() != "" {
		t.Fatalf("user code set after rejected login: %q", m.UserCode())
	}

	if err := m.Login(ctx, "  ravi7 "); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if m.UserCode() != "RAVI7" {
		t.Errorf("UserCode = %q, want RAVI7", m.UserCode())
	}

	stored, err := s.Get(ctx, model.KeyUserCode)
	if err != nil || stored != "RAVI7" {
		t.Errorf("stored user code = %q, %v", stored, err)
	}
}

func TestPartitionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	m, _ := newManager(t, s, model.VariantGoals)

	_ = m.Login(ctx, "alice")
	a, _ := m.CreateItem(ctx, goal("Alice goal"))
	_, _ = m.CompleteItem(ctx, a.ID)

	_ = m.Login(ctx, "bob")
	if len(m.Items()) != 0 || len(m.CompletedIDs()) != 0 {
		t.Fatalf("bob sees alice's data: %+v", m.Snapshot())
	}
	_, _ = m.CreateItem(ctx, goal("Bob goal"))

	_ = m.Login(ctx, "alice")
	items := m.Items()
	if len(items) != 1 || items[0].Name != "Alice goal" || !m.IsCompleted(a.ID) {
		t.Errorf("alice partition = %+v", m.Snapshot())
	}

	raw, err := s.Get(ctx, model.UserDataKey("BOB"))
	if err != nil {
		t.Fatalf("bob partition missing: %v", err)
	}
	var rec model.UserDataRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Version != model.SchemaVersion || len(rec.PersonalGoals) != 1 || rec.LastUpdate.IsZero() {
		t.Errorf("bob record = %+v", rec)
	}
}

func TestGoalMutationsRequireUserCode(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	m, _ := newManager(t, s, model.VariantGoals)

	asked := false
	c := state.ConfirmFunc(func(string) (bool, error) {
		asked = true
		return true, nil
	})

	if _, err := m.CreateItem(ctx, goal("Read a book")); !errors.Is(err, state.ErrNoUserCode) {
		t.Errorf("CreateItem error = %v, want ErrNoUserCode", err)
	}
	if _, err := m.CompleteItem(ctx, 1); !errors.Is(err, state.ErrNoUserCode) {
		t.Errorf("CompleteItem error = %v, want ErrNoUserCode", err)
	}
	if _, err := m.DeleteItem(ctx, 1, c); !errors.Is(err, state.ErrNoUserCode) {
		t.Errorf("DeleteItem error = %v, want ErrNoUserCode", err)
	}
	if _, err := m.CreateTeamGoal(ctx, state.TeamGoalInput{Name: "Ship", TeamCode: "core", Deadline: "2025-03-01"}); !errors.Is(err, state.ErrNoUserCode) {
		t.Errorf("CreateTeamGoal error = %v, want ErrNoUserCode", err)
	}
	if _, err := m.DeleteTeamGoal(ctx, 1, c); !errors.Is(err, state.ErrNoUserCode) {
		t.Errorf("DeleteTeamGoal error = %v, want ErrNoUserCode", err)
	}
	if asked {
		t.Error("confirmation requested without a user code")
	}

	if len(m.Items()) != 0 || len(m.TeamGoals()) != 0 {
		t.Errorf("state changed without a user code: %+v", m.Snapshot())
	}
	if err := m.SaveUserData(ctx); err != nil {
		t.Fatalf("SaveUserData: %v", err)
	}
	keys, _ := s.Keys(ctx)
	if len(keys) != 0 {
		t.Errorf("keys written without user code: %v", keys)
	}
}

func TestFailedLoginKeepsPreviousUser(t *testing.T) {
	ctx := context.Background()
	s := &testutil.FailingStore{Store: testutil.NewTestStore(t)}
	m, _ := newManager(t, s, model.VariantGoals)

	if err := m.Login(ctx, "aaa"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := m.CreateItem(ctx, goal("A secret")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	s.FailWrites = true
	if err := m.Login(ctx, "bbb"); !errors.Is(err, testutil.ErrInjected) {
		t.Fatalf("Login error = %v, want injected failure", err)
	}
	if m.UserCode() != "AAA" {
		t.Errorf("UserCode after failed login = %q, want AAA", m.UserCode())
	}
	if items := m.Items(); len(items) != 1 || items[0].Name != "A secret" {
		t.Errorf("items after failed login = %+v", items)
	}

	s.FailWrites = false
	if _, err := m.CreateItem(ctx, goal("A second")); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := s.Get(ctx, model.UserDataKey("BBB")); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("BBB partition written after failed login: %v", err)
	}
	raw, err := s.Get(ctx, model.UserDataKey("AAA"))
	if err != nil {
		t.Fatalf("AAA partition missing: %v", err)
	}
	var rec model.UserDataRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.PersonalGoals) != 2 {
		t.Errorf("AAA goals = %+v, want 2", rec.PersonalGoals)
	}
}

func TestReloadRestoresLoggedInUser(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	m, _ := newManager(t, s, model.VariantGoals)

	_ = m.Login(ctx, "zed")
	_, _ = m.CreateItem(ctx, goal("Persisted"))

	fresh, _ := newManager(t, s, model.VariantGoals)
	if fresh.UserCode() != "ZED" {
		t.Fatalf("UserCode after reload = %q", fresh.UserCode())
	}
	if items := fresh.Items(); len(items) != 1 || items[0].Name != "Persisted" {
		t.Errorf("items after reload = %+v", items)
	}
}

func TestLogoutKeepsPartition(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	m, _ := newManager(t, s, model.VariantGoals)

	_ = m.Login(ctx, "kim")
	_, _ = m.CreateItem(ctx, goal("Keep me"))

	if err := m.Logout(ctx, state.AlwaysConfirm); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if m.UserCode() != "" || len(m.Items()) != 0 {
		t.Fatalf("state after logout = %+v", m.Snapshot())
	}

	fresh, _ := newManager(t, s, model.VariantGoals)
	if fresh.UserCode() != "" {
		t.Errorf("user code survived logout: %q", fresh.UserCode())
	}

	_ = fresh.Login(ctx, "kim")
	if len(fresh.Items()) != 1 {
		t.Errorf("partition lost after logout: %+v", fresh.Snapshot())
	}
}

func TestTeamGoals(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, testutil.NewTestStore(t), model.VariantGoals)
	_ = m.Login(ctx, "lead")

	if _, err := m.CreateTeamGoal(ctx, state.TeamGoalInput{Name: "Ship", TeamCode: "", Deadline: "2025-03-01"}); err == nil {
		t.Fatal("expected validation error for missing team code")
	}

	g, err := m.CreateTeamGoal(ctx, state.TeamGoalInput{Name: "Ship", TeamCode: "core", Deadline: "2025-03-01"})
	if err != nil {
		t.Fatalf("CreateTeamGoal: %v", err)
	}
	if g.TeamCode != "CORE" || len(g.Members) != 1 || g.Members[0] != "LEAD" || g.Progress != 0 {
		t.Errorf("team goal = %+v", g)
	}

	if _, err := m.DeleteTeamGoal(ctx, g.ID, state.ConfirmFunc(func(string) (bool, error) { return false, nil })); !errors.Is(err, state.ErrConfirmationDeclined) {
		t.Errorf("declined DeleteTeamGoal error = %v", err)
	}
	if len(m.TeamGoals()) != 1 {
		t.Fatalf("team goals = %d, want 1", len(m.TeamGoals()))
	}

	removed, err := m.DeleteTeamGoal(ctx, g.ID, state.AlwaysConfirm)
	if err != nil || !removed {
		t.Fatalf("DeleteTeamGoal = %v, %v", removed, err)
	}
	if len(m.TeamGoals()) != 0 {
		t.Errorf("team goals after delete = %+v", m.TeamGoals())
	}
}

func TestTargetsVariantRejectsGoalOnlyOperations(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, testutil.NewTestStore(t), model.VariantTargets)

	if _, err := m.CreateTeamGoal(ctx, state.TeamGoalInput{Name: "x", TeamCode: "y", Deadline: "z"}); !errors.Is(err, state.ErrTeamGoalsUnsupported) {
		t.Errorf("CreateTeamGoal error = %v", err)
	}
	if err := m.Login(ctx, "abc"); !errors.Is(err, state.ErrUserDataUnsupported) {
		t.Errorf("Login error = %v", err)
	}
	if err := m.SaveUserData(ctx); !errors.Is(err, state.ErrUserDataUnsupported) {
		t.Errorf("SaveUserData error = %v", err)
	}
}
