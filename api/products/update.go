package products

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"coachfit_server/api/middleware"
	"coachfit_server/handling"
	"coachfit_server/lib"
	"coachfit_server/structs"
	"coachfit_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxImageUploadBytes = 8 << 20 // 8 MB

type UpdateProductRequest struct {
	Title       string  `json:"title" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"required"`
	Price       *uint64 `json:"price" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=program workshop document fitness consultation"`
	Capacity    int     `json:"capacity" validate:"omitempty,min=0"`
	Modality    string  `json:"modality" validate:"omitempty,oneof=online in_person"`

	ImageURL string `json:"image_url"`
	VideoURL string `json:"video_url"`

	Blocks []structs.WorkshopBlock `json:"blocks" validate:"omitempty,dive"`

	CSVData          [][]string `json:"csv_data"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	AvailabilityType string     `json:"availability_type" validate:"omitempty,oneof=until_stock consult"`
	StockQuantity    int        `json:"stock_quantity" validate:"omitempty,min=0"`
}

// UpdateProduct handles PUT /products/{id}. Accepts a JSON body, or
// multipart/form-data with the JSON payload in the "data" field and the cover
// image in the "image" file field.
func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		prm.logger.Warn("Invalid product ID format", gecho.Field("id", chi.URLParam(r, "id")))
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	var body *UpdateProductRequest
	var file multipart.File
	var image io.Reader
	var imageName string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		body, file, imageName, err = prm.parseMultipartUpdate(r)
	} else {
		body, err = lib.ExtractAndValidateBody[UpdateProductRequest](r)
	}
	if err != nil {
		handling.HandleError(err, "invalid product update payload", prm.logger, w)
		return
	}
	if file != nil {
		defer file.Close()
		image = file
	}

	input := &structs.UpdateProductInput{
		Title:            body.Title,
		Description:      body.Description,
		Price:            *body.Price,
		Type:             tables.ActivityType(body.Type),
		Capacity:         body.Capacity,
		Modality:         body.Modality,
		ImageURL:         body.ImageURL,
		Image:            image,
		ImageName:        imageName,
		VideoURL:         body.VideoURL,
		Blocks:           body.Blocks,
		CSVData:          body.CSVData,
		StartDate:        body.StartDate,
		EndDate:          body.EndDate,
		AvailabilityType: body.AvailabilityType,
		StockQuantity:    body.StockQuantity,
	}

	claims, _ := middleware.GetClaimsFromContext(ctx)
	view, err := prm.productService.UpdateProduct(ctx, claims, id, input)
	if err != nil {
		handling.HandleError(err, "failed to update product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(view),
		gecho.Send(),
	)
}

// parseMultipartUpdate extracts the JSON payload and optional image upload
// from a multipart request. The caller owns the returned file and must close
// it.
func (prm *ProductRoutesManager) parseMultipartUpdate(r *http.Request) (*UpdateProductRequest, multipart.File, string, error) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		return nil, nil, "", &lib.ValidationError{Errors: []lib.FieldError{
			{Field: "body", Message: "invalid multipart form"},
		}}
	}

	payload := r.FormValue("data")
	if payload == "" {
		return nil, nil, "", &lib.ValidationError{Errors: []lib.FieldError{
			{Field: "data", Message: "missing product payload"},
		}}
	}

	var body UpdateProductRequest
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		return nil, nil, "", &lib.ValidationError{Errors: []lib.FieldError{
			{Field: "data", Message: "malformed product payload"},
		}}
	}
	if err := lib.ValidateStruct(&body); err != nil {
		return nil, nil, "", err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return &body, nil, "", nil
		}
		return nil, nil, "", &lib.ValidationError{Errors: []lib.FieldError{
			{Field: "image", Message: "unreadable image upload"},
		}}
	}

	return &body, file, header.Filename, nil
}
