package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/towechlabs/finance-category-service/config"
	"github.com/towechlabs/finance-category-service/internal/category"
	"github.com/towechlabs/finance-category-service/internal/category/dto"
	categoryErrors "github.com/towechlabs/finance-category-service/internal/category/errors"
	"github.com/towechlabs/finance-category-service/internal/category/validator"
	"github.com/towechlabs/finance-category-service/internal/logger"
	"github.com/towechlabs/finance-category-service/internal/model"
	"github.com/towechlabs/finance-category-service/internal/transaction"
)

func newTestUseCase() (category.UseCase, *category.MockRepository, *transaction.MockRepository) {
	repo := category.NewMockRepository()
	transactions := transaction.NewMockRepository()
	uc := NewCategoryUseCase(repo, transactions, validator.New(repo), config.CategoryConfig{
		FallbackExpenseCategoryID: "other-expense",
		FallbackIncomeCategoryID:  "other-income",
	}, logger.NewNop())
	return uc, repo, transactions
}

func fieldsOf(t *testing.T, err error) categoryErrors.FieldErrors {
	t.Helper()

	var validationErr *categoryErrors.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}
	var authErr *categoryErrors.AuthorizationError
	require.True(t, errors.As(err, &authErr), "expected a validation or authorization error, got %v", err)
	return authErr.Fields
}

func TestAdd_NormalizesInput(t *testing.T) {
	uc, _, _ := newTestUseCase()

	cat, err := uc.Add(context.Background(), &dto.AddCategoryInput{
		UserID:   "u1",
		Name:     " Food ",
		Type:     "income",
		IconID:   -5,
		ParentID: "-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Food", cat.Name)
	assert.Equal(t, model.TypeIncome, cat.Type)
	assert.Equal(t, 0, cat.IconID)
	assert.Equal(t, model.NoParentID, cat.ParentID)
	assert.Equal(t, "u1", cat.UserID)
	assert.False(t, cat.Archived)
	assert.NotEmpty(t, cat.ID)
}

func TestAdd_UnknownTypeBecomesExpense(t *testing.T) {
	uc, _, _ := newTestUseCase()

	cat, err := uc.Add(context.Background(), &dto.AddCategoryInput{
		UserID: "u1", Name: "Rent", Type: "whatever", ParentID: "-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TypeExpense, cat.Type)
}

func TestAdd_EmptyName(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Add(context.Background(), &dto.AddCategoryInput{
		UserID: "u1", Name: "   ", Type: "income", ParentID: "-1",
	})
	require.Error(t, err)
	assert.True(t, categoryErrors.IsValidationError(err))
	assert.Equal(t, "Category name can't be empty", fieldsOf(t, err)["name"])
}

func TestAdd_NestedParentRejected(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "root"}, UserID: "u1", ParentID: model.NoParentID})
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "child"}, UserID: "u1", ParentID: "root"})

	_, err := uc.Add(context.Background(), &dto.AddCategoryInput{
		UserID: "u1", Name: "Grandchild", Type: "expense", ParentID: "child",
	})
	require.Error(t, err)
	assert.Equal(t, "Categories only support one level of nesting", fieldsOf(t, err)["parent_id"])
}

func TestAdd_GlobalParentAllowed(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "global"}, UserID: model.GlobalUserID, ParentID: model.NoParentID})

	cat, err := uc.Add(context.Background(), &dto.AddCategoryInput{
		UserID: "u1", Name: "Groceries", Type: "expense", ParentID: "global",
	})
	require.NoError(t, err)
	assert.Equal(t, "global", cat.ParentID)
}

func TestAdd_MergesParentAndNameErrors(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Add(context.Background(), &dto.AddCategoryInput{
		UserID: "u1", Name: "", Type: "expense", ParentID: "missing",
	})
	require.Error(t, err)

	fields := fieldsOf(t, err)
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "parent_id")
}

func TestGetAll_IncludesGlobalCategories(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "mine"}, UserID: "u1"})
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "global"}, UserID: model.GlobalUserID})
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "theirs"}, UserID: "u2"})

	categories, err := uc.GetAll(context.Background(), "u1")
	require.NoError(t, err)

	ids := make([]string, 0, len(categories))
	for _, cat := range categories {
		ids = append(ids, cat.ID)
	}
	assert.ElementsMatch(t, []string{"mine", "global"}, ids)
}

func TestGetByID_GlobalVisibleToAnyUser(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "global"}, UserID: model.GlobalUserID})

	cat, err := uc.GetByID(context.Background(), "u1", "global")
	require.NoError(t, err)
	assert.Equal(t, "global", cat.ID)
}

func TestGetByID_NotOwned(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "theirs"}, UserID: "u2"})

	_, err := uc.GetByID(context.Background(), "u1", "theirs")
	require.Error(t, err)
	assert.True(t, categoryErrors.IsAuthorizationError(err))
}

func TestEdit_NoChangesSkipsStore(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "c1"},
		UserID:    "u1", Name: "Food", Type: model.TypeExpense, IconID: 3, ParentID: model.NoParentID,
	})

	name := "Food"
	cat, changed, err := uc.Edit(context.Background(), &dto.EditCategoryInput{
		ID: "c1", UserID: "u1", Name: &name,
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, &model.Category{}, cat)

	stored, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Food", stored.Name)
	assert.Equal(t, 3, stored.IconID)
}

func TestEdit_StagesOnlyChangedFields(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "c1"},
		UserID:    "u1", Name: "Food", Type: model.TypeExpense, IconID: 3, ParentID: model.NoParentID,
	})

	name := "  Dining  "
	icon := 9
	cat, changed, err := uc.Edit(context.Background(), &dto.EditCategoryInput{
		ID: "c1", UserID: "u1", Name: &name, IconID: &icon,
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Dining", cat.Name)
	assert.Equal(t, 9, cat.IconID)
	assert.Equal(t, model.TypeExpense, cat.Type)
}

func TestEdit_SanitizesIconID(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "c1"},
		UserID:    "u1", Name: "Food", Type: model.TypeExpense, IconID: 3, ParentID: model.NoParentID,
	})

	icon := -7
	cat, changed, err := uc.Edit(context.Background(), &dto.EditCategoryInput{
		ID: "c1", UserID: "u1", IconID: &icon,
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, cat.IconID)
}

func TestEdit_InvalidNameBlocksUpdate(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "c1"},
		UserID:    "u1", Name: "Food", Type: model.TypeExpense, ParentID: model.NoParentID,
	})

	name := "   "
	icon := 5
	_, _, err := uc.Edit(context.Background(), &dto.EditCategoryInput{
		ID: "c1", UserID: "u1", Name: &name, IconID: &icon,
	})
	require.Error(t, err)
	assert.True(t, categoryErrors.IsValidationError(err))

	// The whole operation is rejected, including the valid icon change.
	stored, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Food", stored.Name)
	assert.Equal(t, 0, stored.IconID)
}

func TestEdit_InvalidParentBlocksUpdate(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "c1"},
		UserID:    "u1", Name: "Food", Type: model.TypeExpense, ParentID: model.NoParentID,
	})

	parent := "missing"
	_, _, err := uc.Edit(context.Background(), &dto.EditCategoryInput{
		ID: "c1", UserID: "u1", ParentID: &parent,
	})
	require.Error(t, err)
	assert.Equal(t, "Parent category doesn't exist", fieldsOf(t, err)["parent_id"])
}

func TestEdit_CanDetachParent(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "root"}, UserID: "u1", ParentID: model.NoParentID})
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "c1"}, UserID: "u1", Name: "Food", ParentID: "root"})

	parent := model.NoParentID
	cat, changed, err := uc.Edit(context.Background(), &dto.EditCategoryInput{
		ID: "c1", UserID: "u1", ParentID: &parent,
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, model.NoParentID, cat.ParentID)
}

func TestEdit_ArchiveFlag(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "c1"}, UserID: "u1", Name: "Food", ParentID: model.NoParentID})

	archived := true
	cat, changed, err := uc.Edit(context.Background(), &dto.EditCategoryInput{
		ID: "c1", UserID: "u1", Archived: &archived,
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, cat.Archived)
}

func TestEdit_MissingCategory(t *testing.T) {
	uc, _, _ := newTestUseCase()

	name := "Food"
	_, _, err := uc.Edit(context.Background(), &dto.EditCategoryInput{
		ID: "nope", UserID: "u1", Name: &name,
	})
	require.Error(t, err)
	assert.True(t, categoryErrors.IsAuthorizationError(err))
}

func TestDelete_FirstRequestArchives(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "c1"}, UserID: "u1", Name: "Food", ParentID: model.NoParentID})

	result, err := uc.Delete(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.True(t, result.Archived)
	assert.True(t, result.Category.Archived)

	stored, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, stored, "archived category must still be retrievable")
	assert.True(t, stored.Archived)
}

func TestDelete_SecondRequestRemoves(t *testing.T) {
	uc, repo, transactions := newTestUseCase()
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "c1"},
		UserID:    "u1", Name: "Food", Type: model.TypeExpense, ParentID: model.NoParentID, Archived: true,
	})
	transactions.Seed(model.Transaction{ID: "t1", UserID: "u1", CategoryID: "c1"})
	transactions.Seed(model.Transaction{ID: "t2", UserID: "u1", CategoryID: "c1"})

	result, err := uc.Delete(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.False(t, result.Archived)
	assert.Equal(t, "c1", result.Category.ID)

	stored, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.Equal(t, 0, transactions.CountByCategory("c1"))
	assert.Equal(t, 2, transactions.CountByCategory("other-expense"))
}

func TestDelete_CascadeWalksChildrenAndReassignsByType(t *testing.T) {
	uc, repo, transactions := newTestUseCase()
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "root"},
		UserID:    "u1", Type: model.TypeIncome, ParentID: model.NoParentID, Archived: true,
	})
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "child-a"},
		UserID:    "u1", Type: model.TypeIncome, ParentID: "root",
	})
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "child-b"},
		UserID:    "u1", Type: model.TypeExpense, ParentID: "root",
	})
	repo.Seed(model.Category{
		BaseModel: model.BaseModel{ID: "unrelated"},
		UserID:    "u1", Type: model.TypeExpense, ParentID: model.NoParentID,
	})
	transactions.Seed(model.Transaction{ID: "t1", CategoryID: "root"})
	transactions.Seed(model.Transaction{ID: "t2", CategoryID: "child-a"})
	transactions.Seed(model.Transaction{ID: "t3", CategoryID: "child-b"})
	transactions.Seed(model.Transaction{ID: "t4", CategoryID: "unrelated"})

	_, err := uc.Delete(context.Background(), "u1", "root")
	require.NoError(t, err)

	for _, id := range []string{"root", "child-a", "child-b"} {
		stored, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, stored, "category %s should be removed", id)
	}

	// Reassignment follows each category's own type.
	assert.Equal(t, 2, transactions.CountByCategory("other-income"))
	assert.Equal(t, 1, transactions.CountByCategory("other-expense"))
	assert.Equal(t, 1, transactions.CountByCategory("unrelated"))
}

func TestDelete_NotOwned(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "theirs"}, UserID: "u2"})

	_, err := uc.Delete(context.Background(), "u1", "theirs")
	require.Error(t, err)
	assert.True(t, categoryErrors.IsAuthorizationError(err))
}

func TestDelete_GlobalNotDeletable(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "global"}, UserID: model.GlobalUserID})

	_, err := uc.Delete(context.Background(), "u1", "global")
	require.Error(t, err)
	assert.True(t, categoryErrors.IsAuthorizationError(err))
}

func TestDeleteUser_RemovesOnlyUserCategories(t *testing.T) {
	uc, repo, transactions := newTestUseCase()
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "mine"}, UserID: "u1"})
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "mine-too"}, UserID: "u1"})
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "global"}, UserID: model.GlobalUserID})
	repo.Seed(model.Category{BaseModel: model.BaseModel{ID: "theirs"}, UserID: "u2"})
	transactions.Seed(model.Transaction{ID: "t1", CategoryID: "mine"})

	require.NoError(t, uc.DeleteUser(context.Background(), "u1"))

	assert.Equal(t, 2, repo.Len())

	// Full user teardown does not touch dependent records.
	assert.Equal(t, 1, transactions.CountByCategory("mine"))
}

func TestStoreFailureSurfacesAsUnexpected(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	repo.FailWith = errors.New("connection refused")

	_, err := uc.GetAll(context.Background(), "u1")
	require.Error(t, err)

	var unexpected *categoryErrors.UnexpectedError
	assert.True(t, errors.As(err, &unexpected))
	assert.False(t, categoryErrors.IsValidationError(err))
}
