package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/towechlabs/finance-category-service/internal/category"
	"github.com/towechlabs/finance-category-service/internal/category/dto"
	categoryErrors "github.com/towechlabs/finance-category-service/internal/category/errors"
	"github.com/towechlabs/finance-category-service/internal/logger"
	"github.com/towechlabs/finance-category-service/internal/message"
	"github.com/towechlabs/finance-category-service/internal/model"
	"go.uber.org/zap"
)

// Processor routes inbound requests to the category use case and converts
// every result and error into exactly one outbound response.
type Processor struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewProcessor(uc category.UseCase, log logger.ZapLogger) *Processor {
	return &Processor{uc: uc, logger: log}
}

type categoryTarget struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type userTarget struct {
	UserID string `json:"user_id"`
}

func (p *Processor) Process(ctx context.Context, req message.Request) message.Response {
	switch req.Type {
	case message.OpAdd:
		return p.add(ctx, req.Payload)
	case message.OpGetAll:
		return p.getAll(ctx, req.Payload)
	case message.OpGetCategory:
		return p.getByID(ctx, req.Payload)
	case message.OpEditCategory:
		return p.edit(ctx, req.Payload)
	case message.OpDeleteCategory:
		return p.delete(ctx, req.Payload)
	case message.OpDeleteUser:
		return p.deleteUser(ctx, req.Payload)
	default:
		p.logger.Debug("unsupported function type", zap.String("type", req.Type))
		return message.ErrorResponse(fmt.Sprintf("Unsupported function type: %s", req.Type), 400, nil)
	}
}

func (p *Processor) add(ctx context.Context, payload json.RawMessage) message.Response {
	var input dto.AddCategoryInput
	if resp := decode(payload, &input); resp != nil {
		return *resp
	}

	cat, err := p.uc.Add(ctx, &input)
	if err != nil {
		return p.fail(err)
	}
	return message.NewResponse(cat, message.TagAdd, 200)
}

func (p *Processor) getAll(ctx context.Context, payload json.RawMessage) message.Response {
	var target userTarget
	if resp := decode(payload, &target); resp != nil {
		return *resp
	}

	categories, err := p.uc.GetAll(ctx, target.UserID)
	if err != nil {
		return p.fail(err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return message.NewResponse(categories, message.TagGetAll, 200)
}

func (p *Processor) getByID(ctx context.Context, payload json.RawMessage) message.Response {
	var target categoryTarget
	if resp := decode(payload, &target); resp != nil {
		return *resp
	}

	cat, err := p.uc.GetByID(ctx, target.UserID, target.ID)
	if err != nil {
		return p.fail(err)
	}
	return message.NewResponse(cat, message.TagGetCategory, 200)
}

func (p *Processor) edit(ctx context.Context, payload json.RawMessage) message.Response {
	var input dto.EditCategoryInput
	if resp := decode(payload, &input); resp != nil {
		return *resp
	}

	cat, changed, err := p.uc.Edit(ctx, &input)
	if err != nil {
		return p.fail(err)
	}
	if !changed {
		return message.NewResponse(cat, message.TagEditCategory, 204)
	}
	return message.NewResponse(cat, message.TagEditCategory, 200)
}

func (p *Processor) delete(ctx context.Context, payload json.RawMessage) message.Response {
	var target categoryTarget
	if resp := decode(payload, &target); resp != nil {
		return *resp
	}

	result, err := p.uc.Delete(ctx, target.UserID, target.ID)
	if err != nil {
		return p.fail(err)
	}
	if result.Archived {
		return message.NewResponse(result.Category, message.TagArchivedCategory, 200)
	}
	return message.NewResponse(result.Category, message.TagDeleteCategory, 200)
}

func (p *Processor) deleteUser(ctx context.Context, payload json.RawMessage) message.Response {
	var target userTarget
	if resp := decode(payload, &target); resp != nil {
		return *resp
	}

	if err := p.uc.DeleteUser(ctx, target.UserID); err != nil {
		return p.fail(err)
	}
	return message.NewResponse(nil, message.TagDeleteUser, 200)
}

// decode unmarshals a payload and, when a field has the wrong JSON type
// (say a string where archived expects a boolean), reports it as a field
// error instead of a blanket failure.
func decode(payload json.RawMessage, v any) *message.Response {
	if err := json.Unmarshal(payload, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			resp := message.ErrorResponse("Invalid Fields", 422, categoryErrors.FieldErrors{
				typeErr.Field: fmt.Sprintf("%s must be %s", typeErr.Field, typeErr.Type),
			})
			return &resp
		}
		resp := message.ErrorResponse("Malformed payload", 422, nil)
		return &resp
	}
	return nil
}

// fail maps the error taxonomy onto response statuses. Anything outside the
// taxonomy is an unexpected failure: logged with its diagnostic, surfaced as
// a bare 500.
func (p *Processor) fail(err error) message.Response {
	var validationErr *categoryErrors.ValidationError
	if errors.As(err, &validationErr) {
		return message.ErrorResponse("Invalid Fields", 422, validationErr.Fields)
	}

	var authErr *categoryErrors.AuthorizationError
	if errors.As(err, &authErr) {
		return message.ErrorResponse("Authentication Error", 403, authErr.Fields)
	}

	var notFoundErr *categoryErrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return message.ErrorResponse(notFoundErr.Msg, 404, nil)
	}

	p.logger.Error("unexpected error", zap.Error(err))
	return message.ErrorResponse("Unexpected error", 500, nil)
}
