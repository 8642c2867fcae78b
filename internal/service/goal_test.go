package service_test

import (
	"testing"
	"time"

	"github.com/daykeep/daykeep/internal/apperr"
	"github.com/daykeep/daykeep/internal/model"
	"github.com/daykeep/daykeep/internal/repository"
	"github.com/daykeep/daykeep/internal/service"
)

var testNow = time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)

func dateOffset(days int) string {
	return model.FormatDate(testNow.AddDate(0, 0, days))
}

// memoryStateRepository keeps the serialized state in memory, going
// through the same JSON projection the sqlite-backed repository uses.
type memoryStateRepository struct {
	data []byte
	now  model.Clock
}

func (r *memoryStateRepository) Load() (*model.AppState, error) {
	if r.data == nil {
		return model.NewAppState(), nil
	}
	return model.StateFromJSON(r.data, r.now)
}

func (r *memoryStateRepository) Save(state *model.AppState) error {
	data, err := state.ToJSON()
	if err != nil {
		return err
	}
	r.data = data
	return nil
}

var _ repository.StateRepository = (*memoryStateRepository)(nil)

func newService(now model.Clock) *service.GoalService {
	return service.NewGoalService(&memoryStateRepository{now: now}, now)
}

func TestCreateGoalSelects(t *testing.T) {
	svc := newService(func() time.Time { return testNow })

	goal, err := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Description: "stretch", Days: 10})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	state, err := svc.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if len(state.Goals) != 1 {
		t.Fatalf("len(goals) = %d", len(state.Goals))
	}
	if state.SelectedGoalID != goal.ID {
		t.Error("new goal should be selected")
	}
}

func TestCompleteDayEarnsCoin(t *testing.T) {
	svc := newService(func() time.Time { return testNow })

	goal, err := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Days: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.CompleteDay(goal.ID, dateOffset(0), "did it")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.Day(dateOffset(0)).Status != model.GoalDayStatusSuccess {
		t.Error("day not completed")
	}

	coins, err := svc.Coins()
	if err != nil {
		t.Fatalf("coins: %v", err)
	}
	if coins != 1 {
		t.Errorf("coins = %d, want 1", coins)
	}

	// Business errors leave the wallet untouched.
	if _, err := svc.CompleteDay(goal.ID, dateOffset(0), ""); err == nil {
		t.Error("completing twice should fail")
	}
	coins, _ = svc.Coins()
	if coins != 1 {
		t.Errorf("coins after failed complete = %d, want 1", coins)
	}
}

func TestCompleteTodayWithCoins(t *testing.T) {
	svc := newService(func() time.Time { return testNow })

	plain, err := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Days: 5})
	if err != nil {
		t.Fatalf("create plain: %v", err)
	}
	backed, err := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Days: 5, UseCoins: true, Coins: 2})
	if err != nil {
		t.Fatalf("create backed: %v", err)
	}

	// No coins yet.
	if _, err := svc.CompleteTodayWithCoins(backed.ID, dateOffset(0), ""); err == nil {
		t.Error("buying with an empty wallet should fail")
	}
	if can, _ := svc.CanUseCoins(backed.ID); can {
		t.Error("CanUseCoins should be false with an empty wallet")
	}

	// Coin-less goals cannot buy at any balance.
	if can, _ := svc.CanUseCoins(plain.ID); can {
		t.Error("CanUseCoins should be false for a coin-less goal")
	}

	// Earn two coins on the plain goal, then buy today on the backed one.
	if _, err := svc.CompleteDay(plain.ID, dateOffset(0), ""); err != nil {
		t.Fatalf("earn: %v", err)
	}
	// Not enough yet: cost is 2, balance 1.
	if _, err := svc.CompleteTodayWithCoins(backed.ID, dateOffset(0), ""); err == nil {
		t.Error("buying with 1 of 2 coins should fail")
	}

	// Yesterday of plain is absent, so earn via a second goal instead.
	extra, err := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Days: 1})
	if err != nil {
		t.Fatalf("create extra: %v", err)
	}
	if _, err := svc.CompleteDay(extra.ID, dateOffset(0), ""); err != nil {
		t.Fatalf("earn more: %v", err)
	}

	if can, _ := svc.CanUseCoins(backed.ID); !can {
		t.Error("CanUseCoins should be true with 2 coins")
	}
	updated, err := svc.CompleteTodayWithCoins(backed.ID, dateOffset(0), "bought")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	day := updated.Day(dateOffset(0))
	if day.Status != model.GoalDayStatusSuccess || !day.IsBought {
		t.Error("bought day should be success and isBought")
	}
	if day.Note != "bought" {
		t.Errorf("note = %q", day.Note)
	}

	coins, _ := svc.Coins()
	if coins != 0 {
		t.Errorf("coins = %d, want 0 after spending", coins)
	}

	// Already completed today.
	if _, err := svc.CompleteTodayWithCoins(backed.ID, dateOffset(0), ""); err == nil {
		t.Error("buying an already completed today should fail")
	}
}

// Buying is pinned to the date in the request: naming any day other
// than the goal's today must fail, even with a full wallet.
func TestCompleteTodayWithCoinsRejectsOtherDates(t *testing.T) {
	svc := newService(func() time.Time { return testNow })

	backed, err := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(-1), Days: 5, UseCoins: true, Coins: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	earner, err := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Days: 1})
	if err != nil {
		t.Fatalf("create earner: %v", err)
	}
	if _, err := svc.CompleteDay(earner.ID, dateOffset(0), ""); err != nil {
		t.Fatalf("earn: %v", err)
	}

	for _, date := range []string{dateOffset(-1), dateOffset(1), "2030-01-01"} {
		_, err := svc.CompleteTodayWithCoins(backed.ID, date, "")
		if err == nil {
			t.Fatalf("buying %s should fail", date)
		}
		be, ok := apperr.AsBusiness(err)
		if !ok || be.Title != "Coins can only buy today" {
			t.Errorf("buying %s: got %v", date, err)
		}
	}

	// The wallet and the days are untouched by the failed buys.
	coins, _ := svc.Coins()
	if coins != 1 {
		t.Errorf("coins = %d, want 1", coins)
	}
	goal, _ := svc.GoalByID(backed.ID)
	if goal.Day(dateOffset(0)).Status != model.GoalDayStatusPendingToday {
		t.Error("today should still be pending")
	}

	// The correct date still works.
	updated, err := svc.CompleteTodayWithCoins(backed.ID, dateOffset(0), "")
	if err != nil {
		t.Fatalf("buy today: %v", err)
	}
	if !updated.Day(dateOffset(0)).IsBought {
		t.Error("today should be bought")
	}
}

func TestSelectAndRemoveGoal(t *testing.T) {
	svc := newService(func() time.Time { return testNow })

	g1, _ := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Days: 3, Description: "one"})
	g2, _ := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Days: 3, Description: "two"})

	// Creating g2 selected it.
	if err := svc.SelectGoal(g2.ID); err == nil {
		t.Error("selecting the selected goal should fail")
	}
	if err := svc.SelectGoal("missing"); err == nil {
		t.Error("selecting an unknown goal should fail")
	}
	if err := svc.SelectGoal(g1.ID); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := svc.RemoveGoal(g1.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	state, _ := svc.State()
	if len(state.Goals) != 1 || state.Goals[0].ID != g2.ID {
		t.Error("remove should drop exactly the requested goal")
	}
	if state.SelectedGoalID != "" {
		t.Error("removing the selected goal should clear the selection")
	}

	err := svc.RemoveGoal(g1.ID)
	if err == nil {
		t.Fatal("removing twice should fail")
	}
	if _, ok := apperr.AsBusiness(err); !ok {
		t.Fatalf("expected a business error, got %v", err)
	}
}

func TestStateSyncsOnLoad(t *testing.T) {
	current := testNow
	clock := func() time.Time { return current }
	repo := &memoryStateRepository{now: clock}
	svc := service.NewGoalService(repo, clock)

	goal, err := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Days: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Overnight rollover: the pending day that was today is now missed.
	current = testNow.AddDate(0, 0, 1)

	state, err := svc.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	days := state.Goal(goal.ID).Days
	if days[0].Status != model.GoalDayStatusError {
		t.Errorf("days[0].status = %q, want error", days[0].Status)
	}
	if days[1].Status != model.GoalDayStatusPendingToday {
		t.Errorf("days[1].status = %q, want pending_today", days[1].Status)
	}

	// The correction was persisted, not just computed.
	reloaded, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded.Goal(goal.ID).Days[0].Status != model.GoalDayStatusError {
		t.Error("sync correction was not persisted")
	}
}

func TestGoalByID(t *testing.T) {
	svc := newService(func() time.Time { return testNow })

	goal, _ := svc.CreateGoal(model.CreateGoalDTO{Date: dateOffset(0), Days: 3})

	got, err := svc.GoalByID(goal.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.ID != goal.ID {
		t.Errorf("id = %q", got.ID)
	}

	_, err = svc.GoalByID("missing")
	if err == nil {
		t.Fatal("unknown id should fail")
	}
	be, ok := apperr.AsBusiness(err)
	if !ok || be.Title != "Goal not found" {
		t.Errorf("expected Goal not found, got %v", err)
	}
}
