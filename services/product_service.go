package services

import (
	"context"
	"fmt"
	"time"

	"coachfit_server/database"
	"coachfit_server/lib"
	"coachfit_server/structs"
	"coachfit_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProductService owns the product read model and the write path that keeps a
// product's dependent rows (media, availability, program data, tags)
// consistent with its primary record.
type ProductService struct {
	logger  *gecho.Logger
	db      *database.DB
	cache   *CacheService
	storage ObjectStorage
	cfg     *structs.Config
}

func NewProductService(logger *gecho.Logger, db *database.DB, cache *CacheService, storage ObjectStorage, cfg *structs.Config) *ProductService {
	return &ProductService{
		logger:  logger,
		db:      db,
		cache:   cache,
		storage: storage,
		cfg:     cfg,
	}
}

// AuthorizeOwner verifies that the caller is a coach who owns the activity.
// Missing products surface as not-found; existing products owned by someone
// else surface as forbidden.
func (ps *ProductService) AuthorizeOwner(ctx context.Context, claims *structs.AuthClaims, activityID uuid.UUID) (*tables.Activity, error) {
	if claims == nil {
		return nil, lib.ErrUnauthenticated
	}
	if claims.Role != tables.RoleCoach {
		return nil, lib.ErrForbidden
	}

	activity, err := database.Query[tables.Activity](ps.db).
		Where("id", activityID).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity %s: %w", activityID, err)
	}
	if activity == nil {
		return nil, lib.ErrNotFound
	}
	if activity.CoachID != claims.Sub {
		return nil, lib.ErrForbidden
	}

	return activity, nil
}

// GetProduct assembles the denormalized product view, serving from cache when
// possible. Failures while deriving the program block degrade to the primary
// data instead of failing the read.
func (ps *ProductService) GetProduct(ctx context.Context, activityID uuid.UUID) (*structs.ProductView, error) {
	if cached, err := ps.cache.GetProductView(ctx, activityID); err != nil {
		ps.logger.Warn("Cache read failed, serving from database",
			gecho.Field("activity_id", activityID),
			gecho.Field("error", err),
		)
	} else if cached != nil {
		return cached, nil
	}

	activity, err := database.Query[tables.Activity](ps.db).
		Where("id", activityID).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity %s: %w", activityID, err)
	}
	if activity == nil {
		return nil, lib.ErrNotFound
	}

	view, err := ps.assembleView(ctx, ps.db, activity)
	if err != nil {
		return nil, err
	}

	if err := ps.cache.SetProductView(ctx, view); err != nil {
		ps.logger.Warn("Failed to cache product view",
			gecho.Field("activity_id", activityID),
			gecho.Field("error", err),
		)
	}

	return view, nil
}

func (ps *ProductService) assembleView(ctx context.Context, idb bun.IDB, activity *tables.Activity) (*structs.ProductView, error) {
	view := &structs.ProductView{Activity: *activity}

	media, err := database.Query[tables.ActivityMedia](idb).
		Where("activity_id", activity.ID).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load media for activity %s: %w", activity.ID, err)
	}
	view.Media = media

	availability, err := database.Query[tables.ActivityAvailability](idb).
		Where("activity_id", activity.ID).
		OrderBy("start_date", database.ASC).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for activity %s: %w", activity.ID, err)
	}
	view.Availability = availability

	tags, err := database.Query[tables.ActivityTag](idb).
		Where("activity_id", activity.ID).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags for activity %s: %w", activity.ID, err)
	}
	view.Tags = tags

	if activity.Type.IsProgramLike() {
		// Programs expose one consolidated period, not raw scheduling rows.
		if period := PickProgramAvailability(availability); period != nil {
			view.Availability = []tables.ActivityAvailability{*period}
		}

		exercises, err := database.Query[tables.FitnessExercise](idb).
			Where("activity_id", activity.ID).
			WhereNull("client_id").
			OrderBy("semana", database.ASC).
			OrderBy("dia", database.ASC).
			All(ctx)
		if err != nil {
			// The primary data is still useful without the derived block.
			ps.logger.Warn("Failed to load program exercises, omitting derived data",
				gecho.Field("activity_id", activity.ID),
				gecho.Field("error", err),
			)
			return view, nil
		}

		view.CSVData = BuildExerciseReport(exercises)
		view.ExercisesCount = len(exercises)
		view.TotalSessions = CountSessions(exercises)
		view.VideoURL = ResolveVideoURL(exercises, media)
	}

	return view, nil
}

// UpdateProduct applies a full product update: primary fields, media
// reference, workshop blocks, and program data, with all dependent writes in
// one transaction. A failed dependent write rolls back the whole update.
func (ps *ProductService) UpdateProduct(ctx context.Context, claims *structs.AuthClaims, activityID uuid.UUID, input *structs.UpdateProductInput) (*structs.ProductView, error) {
	activity, err := ps.AuthorizeOwner(ctx, claims, activityID)
	if err != nil {
		return nil, err
	}

	// Image upload happens outside the transaction: object storage cannot
	// participate in the rollback, and a storage outage must not block the
	// rest of the update. A failed upload falls back to the placeholder.
	imageURL := input.ImageURL
	if input.Image != nil {
		objectName := ProductImageObjectName(activityID, input.ImageName)
		uploaded, uploadErr := ps.storage.UploadImage(ctx, objectName, input.Image)
		if uploadErr != nil {
			ps.logger.Warn("Image upload failed, using placeholder",
				gecho.Field("activity_id", activityID),
				gecho.Field("error", uploadErr),
			)
			imageURL = ps.cfg.Storage.PlaceholderImageURL
		} else {
			imageURL = uploaded
		}
	}

	err = database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		if err := ps.syncMedia(ctx, tx, activityID, imageURL, input.VideoURL); err != nil {
			return err
		}

		updates := map[string]any{
			"title":       input.Title,
			"description": input.Description,
			"price":       input.Price,
			"type":        input.Type,
			"capacity":    input.Capacity,
			"modality":    input.Modality,
			"updated_at":  time.Now(),
		}
		if _, err := database.Query[tables.Activity](tx).
			Where("id", activityID).
			Update(ctx, updates); err != nil {
			return lib.WrapDependencyWrite("activities", "update", err)
		}

		if replacesWorkshopBlocks(input) {
			if err := ps.syncWorkshopBlocks(ctx, tx, activityID, input.Blocks); err != nil {
				return err
			}
		}

		if replacesProgramRows(input) {
			if err := ps.syncProgram(ctx, tx, activity.CoachID, activityID, input); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	ps.invalidateAsync(activityID)

	updated, err := database.Query[tables.Activity](ps.db).
		Where("id", activityID).
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload activity %s: %w", activityID, err)
	}
	if updated == nil {
		return nil, lib.ErrNotFound
	}
	return ps.assembleView(ctx, ps.db, updated)
}

// syncMedia keeps at most one authoritative media row per activity via
// lookup-upsert. Empty incoming fields leave the stored value untouched.
func (ps *ProductService) syncMedia(ctx context.Context, tx bun.Tx, activityID uuid.UUID, imageURL, videoURL string) error {
	if imageURL == "" && videoURL == "" {
		return nil
	}

	existing, err := database.Query[tables.ActivityMedia](tx).
		Where("activity_id", activityID).
		First(ctx)
	if err != nil {
		return lib.WrapDependencyWrite("activity_media", "lookup", err)
	}

	vimeoID := ExtractVimeoID(videoURL)

	if existing == nil {
		media := &tables.ActivityMedia{
			ID:         uuid.New(),
			ActivityID: activityID,
			ImageURL:   imageURL,
			VideoURL:   videoURL,
			VimeoID:    vimeoID,
			CreatedAt:  time.Now(),
		}
		if _, err := database.Query[tables.ActivityMedia](tx).Insert(ctx, media); err != nil {
			return lib.WrapDependencyWrite("activity_media", "insert", err)
		}
		return nil
	}

	updates := map[string]any{}
	if imageURL != "" {
		updates["image_url"] = imageURL
	}
	if videoURL != "" {
		updates["video_url"] = videoURL
		updates["vimeo_id"] = vimeoID
	}
	if _, err := database.Query[tables.ActivityMedia](tx).
		Where("id", existing.ID).
		Update(ctx, updates); err != nil {
		return lib.WrapDependencyWrite("activity_media", "update", err)
	}
	return nil
}

// replacesWorkshopBlocks reports whether the payload carries a workshop
// schedule. A payload without blocks leaves the stored schedule untouched,
// so a title-only edit cannot wipe it.
func replacesWorkshopBlocks(input *structs.UpdateProductInput) bool {
	return input.Type == tables.ActivityWorkshop && len(input.Blocks) > 0
}

// replacesProgramRows is the same rule for tabular program data.
func replacesProgramRows(input *structs.UpdateProductInput) bool {
	return input.Type.IsProgramLike() && len(input.CSVData) > 0
}

// syncWorkshopBlocks replaces the workshop's discrete time blocks wholesale.
func (ps *ProductService) syncWorkshopBlocks(ctx context.Context, tx bun.Tx, activityID uuid.UUID, blocks []structs.WorkshopBlock) error {
	if _, err := database.Query[tables.ActivityAvailability](tx).
		Where("activity_id", activityID).
		Where("session_type", tables.SessionWorkshopBlock).
		Delete(ctx); err != nil {
		return lib.WrapDependencyWrite("activity_availability", "delete", err)
	}

	if len(blocks) == 0 {
		return nil
	}

	rows := make([]tables.ActivityAvailability, 0, len(blocks))
	now := time.Now()
	for _, block := range blocks {
		rows = append(rows, tables.ActivityAvailability{
			ID:               uuid.New(),
			ActivityID:       activityID,
			SessionType:      tables.SessionWorkshopBlock,
			AvailabilityType: tables.AvailabilityWorkshopBlock,
			StartDate:        block.StartDate,
			EndDate:          block.EndDate,
			StartTime:        block.StartTime,
			EndTime:          block.EndTime,
			CreatedAt:        now,
		})
	}
	if _, err := database.Query[tables.ActivityAvailability](tx).InsertMany(ctx, rows); err != nil {
		return lib.WrapDependencyWrite("activity_availability", "insert", err)
	}
	return nil
}

// syncProgram replaces the program's template rows, its consolidated
// availability period and its material tags from the tabular payload.
// Client-assigned program copies (client_id set) are never touched.
func (ps *ProductService) syncProgram(ctx context.Context, tx bun.Tx, coachID, activityID uuid.UUID, input *structs.UpdateProductInput) error {
	parsed := ParseProgram(input.CSVData, activityID, coachID)

	if _, err := database.Query[tables.FitnessExercise](tx).
		Where("activity_id", activityID).
		WhereNull("client_id").
		Delete(ctx); err != nil {
		return lib.WrapDependencyWrite("fitness_exercises", "delete", err)
	}
	if _, err := database.Query[tables.NutritionProgramDetail](tx).
		Where("activity_id", activityID).
		WhereNull("client_id").
		Delete(ctx); err != nil {
		return lib.WrapDependencyWrite("nutrition_program_details", "delete", err)
	}

	if len(parsed.Exercises) > 0 {
		if _, err := database.Query[tables.FitnessExercise](tx).InsertMany(ctx, parsed.Exercises); err != nil {
			return lib.WrapDependencyWrite("fitness_exercises", "insert", err)
		}
	}
	if len(parsed.Nutrition) > 0 {
		if _, err := database.Query[tables.NutritionProgramDetail](tx).InsertMany(ctx, parsed.Nutrition); err != nil {
			return lib.WrapDependencyWrite("nutrition_program_details", "insert", err)
		}
	}

	if err := ps.syncProgramAvailability(ctx, tx, activityID, input); err != nil {
		return err
	}

	return ps.syncMaterialTags(ctx, tx, activityID, parsed.Materials)
}

// syncProgramAvailability consolidates a program's availability into a single
// period row.
func (ps *ProductService) syncProgramAvailability(ctx context.Context, tx bun.Tx, activityID uuid.UUID, input *structs.UpdateProductInput) error {
	if _, err := database.Query[tables.ActivityAvailability](tx).
		Where("activity_id", activityID).
		Where("session_type", tables.SessionProgramPeriod).
		Delete(ctx); err != nil {
		return lib.WrapDependencyWrite("activity_availability", "delete", err)
	}

	availabilityType := input.AvailabilityType
	if _, ok := programAvailabilityTypes[availabilityType]; !ok {
		availabilityType = tables.AvailabilityUntilStock
	}

	row := &tables.ActivityAvailability{
		ID:               uuid.New(),
		ActivityID:       activityID,
		SessionType:      tables.SessionProgramPeriod,
		AvailabilityType: availabilityType,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		StockQuantity:    input.StockQuantity,
		CreatedAt:        time.Now(),
	}
	if _, err := database.Query[tables.ActivityAvailability](tx).Insert(ctx, row); err != nil {
		return lib.WrapDependencyWrite("activity_availability", "insert", err)
	}
	return nil
}

// syncMaterialTags replaces the activity's material tags with the equipment
// extracted from the program payload.
func (ps *ProductService) syncMaterialTags(ctx context.Context, tx bun.Tx, activityID uuid.UUID, materials []string) error {
	if _, err := database.Query[tables.ActivityTag](tx).
		Where("activity_id", activityID).
		Where("tag_type", tables.TagMaterial).
		Delete(ctx); err != nil {
		return lib.WrapDependencyWrite("activity_tags", "delete", err)
	}

	if len(materials) == 0 {
		return nil
	}

	rows := make([]tables.ActivityTag, 0, len(materials))
	for _, material := range materials {
		rows = append(rows, tables.ActivityTag{
			ID:         uuid.New(),
			ActivityID: activityID,
			TagType:    tables.TagMaterial,
			TagValue:   material,
		})
	}
	if _, err := database.Query[tables.ActivityTag](tx).InsertMany(ctx, rows); err != nil {
		return lib.WrapDependencyWrite("activity_tags", "insert", err)
	}
	return nil
}

// DeleteProduct removes the product and every dependent row in one
// transaction.
func (ps *ProductService) DeleteProduct(ctx context.Context, claims *structs.AuthClaims, activityID uuid.UUID) error {
	if _, err := ps.AuthorizeOwner(ctx, claims, activityID); err != nil {
		return err
	}

	err := database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		if _, err := database.Query[tables.FitnessExercise](tx).
			Where("activity_id", activityID).
			Delete(ctx); err != nil {
			return lib.WrapDependencyWrite("fitness_exercises", "delete", err)
		}
		if _, err := database.Query[tables.NutritionProgramDetail](tx).
			Where("activity_id", activityID).
			Delete(ctx); err != nil {
			return lib.WrapDependencyWrite("nutrition_program_details", "delete", err)
		}
		if _, err := database.Query[tables.ActivityAvailability](tx).
			Where("activity_id", activityID).
			Delete(ctx); err != nil {
			return lib.WrapDependencyWrite("activity_availability", "delete", err)
		}
		if _, err := database.Query[tables.ActivityTag](tx).
			Where("activity_id", activityID).
			Delete(ctx); err != nil {
			return lib.WrapDependencyWrite("activity_tags", "delete", err)
		}
		if _, err := database.Query[tables.ActivityMedia](tx).
			Where("activity_id", activityID).
			Delete(ctx); err != nil {
			return lib.WrapDependencyWrite("activity_media", "delete", err)
		}
		if _, err := database.Query[tables.Activity](tx).
			Where("id", activityID).
			Delete(ctx); err != nil {
			return lib.WrapDependencyWrite("activities", "delete", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ps.invalidateAsync(activityID)
	return nil
}

// invalidateAsync drops the cached view off the request path. Invalidation
// failures only risk a stale read until the TTL expires, so they are logged,
// not surfaced.
func (ps *ProductService) invalidateAsync(activityID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ps.cache.InvalidateProductView(ctx, activityID); err != nil {
			ps.logger.Warn("Failed to invalidate product view cache",
				gecho.Field("activity_id", activityID),
				gecho.Field("error", err),
			)
		}
	}()
}
