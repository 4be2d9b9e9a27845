package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/crpaedu/backstage/core"
	"github.com/crpaedu/backstage/core/student"
	"github.com/crpaedu/backstage/core/teacher"
	photosvc "github.com/crpaedu/backstage/services/photo"
)

type photoApi struct {
	editor     photosvc.Editor
	studentSvc *student.Service
	teacherSvc *teacher.Service
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator
}

func registerPhotoAPI(g *echo.Group, sess echo.MiddlewareFunc, deps ServerDeps) {
	api := photoApi{
		editor:     deps.PhotoEditor,
		studentSvc: deps.StudentSvc,
		teacherSvc: deps.TeacherSvc,
		logger:     deps.Logger,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	g.POST("/photo/edit", api.edit, sess, adminMiddleware())
}

// edit runs the instruction against the image model. A failed or empty
// edit never touches the stored photo; the caller keeps the original.
func (api *photoApi) edit(ctx echo.Context) error {
	if api.editor == nil {
		return errPhotoDisabled
	}

	var data EditPhotoRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EditPhotoRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	edited, err := api.editor.EditImage(ctx.Request().Context(), data.ImageB64, data.MimeType, data.Instruction)
	if err != nil {
		api.logger.Error("image edit failed", errors.Wrap(err, "editing image"))
		return errPhotoUnavailable
	}
	if edited == "" {
		return ctx.JSON(http.StatusOK, EditPhotoResponse{Edited: false})
	}

	resp := EditPhotoResponse{
		Edited:   true,
		ImageB64: edited,
		MimeType: data.MimeType,
	}

	// optionally persist the result as the subject's new photo
	if data.ApplyTo != "" {
		dataURL := fmt.Sprintf("data:%s;base64,%s", data.MimeType, edited)
		switch data.ApplyRole {
		case "student":
			std, err := api.studentSvc.GetByID(data.ApplyTo)
			if err != nil {
				return errors.Wrap(err, "resolving photo subject")
			}
			if _, err := api.studentSvc.SetPhoto(std, dataURL); err != nil {
				return errors.Wrap(err, "saving student photo")
			}
			resp.Applied = true
		case "teacher":
			tch, err := api.teacherSvc.GetByID(data.ApplyTo)
			if err != nil {
				return errors.Wrap(err, "resolving photo subject")
			}
			if _, err := api.teacherSvc.SetPhoto(tch, dataURL); err != nil {
				return errors.Wrap(err, "saving teacher photo")
			}
			resp.Applied = true
		}
	}

	return ctx.JSON(http.StatusOK, resp)
}

type (
	EditPhotoRequest struct {
		ImageB64    string `json:"image_b64" validate:"required,base64"`
		MimeType    string `json:"mime_type" validate:"required"`
		Instruction string `json:"instruction" validate:"required"`
		// optional subject to save the result to
		ApplyTo   string `json:"apply_to"`
		ApplyRole string `json:"apply_role" validate:"required_with=ApplyTo,omitempty,oneof=student teacher"`
	}

	EditPhotoResponse struct {
		Edited   bool   `json:"edited"`
		Applied  bool   `json:"applied,omitempty"`
		ImageB64 string `json:"image_b64,omitempty"`
		MimeType string `json:"mime_type,omitempty"`
	}
)

func (er *EditPhotoRequest) Validate(validate *validator.Validate) error {
	er.MimeType = core.CleanString(er.MimeType, true /* lower */)
	er.Instruction = core.CleanString(er.Instruction)
	return validate.Struct(er)
}
