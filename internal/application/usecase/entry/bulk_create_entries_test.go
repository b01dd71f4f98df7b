package entry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/scope3-tracker/backend/internal/domain/entity"
	domainerror "github.com/scope3-tracker/backend/internal/domain/error"
)

// fakeEntryRepository records calls without touching a database.
type fakeEntryRepository struct {
	created   []*entity.Entry
	batchErr  error
	createErr error
}

func (f *fakeEntryRepository) Create(ctx context.Context, e *entity.Entry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, e)
	return nil
}

func (f *fakeEntryRepository) CreateBatch(ctx context.Context, entries []*entity.Entry) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.created = append(f.created, entries...)
	return nil
}

func (f *fakeEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	for _, e := range f.created {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domainerror.ErrEntryNotFound
}

func (f *fakeEntryRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.Entry, error) {
	var out []*entity.Entry
	for _, e := range f.created {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEntryRepository) Update(ctx context.Context, e *entity.Entry) error {
	return nil
}

func (f *fakeEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

// fakeEntitlement answers the gate check from memory.
type fakeEntitlement struct {
	unlocked bool
	err      error
}

func (f *fakeEntitlement) IsFeatureUnlocked(ctx context.Context, companyID uuid.UUID) (bool, error) {
	return f.unlocked, f.err
}

// fixedClock always reports the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func assertBillingErrorCode(t *testing.T, err error, want domainerror.BillingErrorCode) {
	t.Helper()
	var billingErr *domainerror.BillingError
	if !errors.As(err, &billingErr) {
		t.Fatalf("expected BillingError, got %T: %v", err, err)
	}
	if billingErr.Code != want {
		t.Fatalf("expected code %s, got %s", want, billingErr.Code)
	}
}

func TestBulkCreateEntriesUseCase(t *testing.T) {
	companyID := uuid.New()
	userID := uuid.New()

	newUseCase := func(repo *fakeEntryRepository, entitlement *fakeEntitlement) *BulkCreateEntriesUseCase {
		return NewBulkCreateEntriesUseCase(repo, entitlement, fixedClock{now: testNow})
	}

	t.Run("persists every valid row in one batch", func(t *testing.T) {
		repo := &fakeEntryRepository{}
		uc := newUseCase(repo, &fakeEntitlement{unlocked: true})

		output, err := uc.Execute(context.Background(), BulkCreateEntriesInput{
			CompanyID:  companyID,
			UserID:     userID,
			Candidates: []Candidate{validSpendCandidate(), validActualCandidate()},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(repo.created) != 2 {
			t.Fatalf("expected 2 persisted entries, got %d", len(repo.created))
		}
		if len(output.Entries) != 2 {
			t.Fatalf("expected 2 output entries, got %d", len(output.Entries))
		}
		for _, e := range repo.created {
			if e.CompanyID != companyID {
				t.Errorf("entry carries wrong company %s", e.CompanyID)
			}
			if e.UserID != userID {
				t.Errorf("entry carries wrong user %s", e.UserID)
			}
		}
	})

	t.Run("one invalid row aborts the whole batch", func(t *testing.T) {
		repo := &fakeEntryRepository{}
		uc := newUseCase(repo, &fakeEntitlement{unlocked: true})

		bad := validSpendCandidate()
		bad.Currency = "EUR"

		candidates := []Candidate{
			validSpendCandidate(),
			validActualCandidate(),
			bad,
			validSpendCandidate(),
			validActualCandidate(),
		}

		_, err := uc.Execute(context.Background(), BulkCreateEntriesInput{
			CompanyID:  companyID,
			UserID:     userID,
			Candidates: candidates,
		})

		assertEntryErrorCode(t, err, domainerror.ErrCodeInvalidBatchRow)
		if len(repo.created) != 0 {
			t.Fatalf("expected no persisted entries, got %d", len(repo.created))
		}

		var entryErr *domainerror.EntryError
		if !errors.As(err, &entryErr) {
			t.Fatalf("expected EntryError, got %T", err)
		}
		if entryErr.Message != "row 3 is invalid" {
			t.Errorf("unexpected message %q", entryErr.Message)
		}
		// The row error stays reachable through the chain.
		var rowErr *domainerror.EntryError
		if !errors.As(entryErr.Unwrap(), &rowErr) {
			t.Fatal("expected wrapped row error")
		}
		if rowErr.Code != domainerror.ErrCodeCurrencyMismatch {
			t.Errorf("expected wrapped currency mismatch, got %s", rowErr.Code)
		}
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		repo := &fakeEntryRepository{}
		uc := newUseCase(repo, &fakeEntitlement{unlocked: true})

		_, err := uc.Execute(context.Background(), BulkCreateEntriesInput{
			CompanyID: companyID,
			UserID:    userID,
		})
		assertEntryErrorCode(t, err, domainerror.ErrCodeEmptyBatch)
	})

	t.Run("locked feature refuses the batch", func(t *testing.T) {
		repo := &fakeEntryRepository{}
		uc := newUseCase(repo, &fakeEntitlement{unlocked: false})

		_, err := uc.Execute(context.Background(), BulkCreateEntriesInput{
			CompanyID:  companyID,
			UserID:     userID,
			Candidates: []Candidate{validSpendCandidate()},
		})
		assertBillingErrorCode(t, err, domainerror.ErrCodeFeatureLocked)
		if len(repo.created) != 0 {
			t.Fatal("expected no persisted entries")
		}
	})

	t.Run("entitlement outage fails closed", func(t *testing.T) {
		repo := &fakeEntryRepository{}
		uc := newUseCase(repo, &fakeEntitlement{err: errors.New("billing unreachable")})

		_, err := uc.Execute(context.Background(), BulkCreateEntriesInput{
			CompanyID:  companyID,
			UserID:     userID,
			Candidates: []Candidate{validSpendCandidate()},
		})
		assertBillingErrorCode(t, err, domainerror.ErrCodeEntitlementCheckFailed)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		repo := &fakeEntryRepository{batchErr: errors.New("connection lost")}
		uc := newUseCase(repo, &fakeEntitlement{unlocked: true})

		_, err := uc.Execute(context.Background(), BulkCreateEntriesInput{
			CompanyID:  companyID,
			UserID:     userID,
			Candidates: []Candidate{validSpendCandidate()},
		})
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}
