package room

import (
	"hotel/infras/otel"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{code}", handler.GetRoom)
		routerGroup.Patch("/{code}", handler.UpdateRoom)
		routerGroup.Post("/{code}/image", handler.UploadImage)
	})
}

func listRequest(r *http.Request) (dto.ListRoomsRequest, error) {
	query := r.URL.Query()
	req := dto.ListRoomsRequest{
		CheckIn:  query.Get(constant.RequestParamCheckIn),
		CheckOut: query.Get(constant.RequestParamCheckOut),
	}

	if guests := query.Get(constant.RequestParamGuests); guests != "" {
		n, err := strconv.Atoi(guests)
		if err != nil {
			return req, failure.Validation("guests must be a number") // nolint:wrapcheck
		}

		req.Guests = n
	}

	return req, validator.ValidateStruct(&req)
}

// GetRooms lists the room catalogue.
// @Summary List room types
// @Description List active room types. With a stay the total price and free rooms are included.
// @Tags Room
// @Produce json
// @Param check_in query string false "Check-in date (YYYY-MM-DD)"
// @Param check_out query string false "Check-out date (YYYY-MM-DD)"
// @Param guests query integer false "Party size"
// @Success 200 {object} dto.GetRoomsResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	req, err := listRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid room list query")

		response.WithError(w, err)

		return
	}

	rooms, err := handler.service.GetAll(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoom retrieves one room type.
// @Summary Get a room type
// @Description Retrieve a room type with its seasons, priced for a stay when dates are given.
// @Tags Room
// @Produce json
// @Param code path string true "Room type code"
// @Param check_in query string false "Check-in date (YYYY-MM-DD)"
// @Param check_out query string false "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code} [get]
func (handler *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoom")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	req, err := listRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid room query")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Get(ctx, code, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("code", code).Msg("failed to get room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom edits the name or description of a room type.
// @Summary Update a room type
// @Description Edit the presentation of a room type. Rates and inventory are managed by the seeder.
// @Tags Room
// @Accept json
// @Produce json
// @Param code path string true "Room type code"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	req := dto.UpdateRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, code); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("room updated", map[string]any{"room_type": code, "user": user})

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// UploadImage replaces the picture of a room type.
// @Summary Upload a room image
// @Description Upload a png, jpeg or webp picture of at most 2 MB and attach it to the room type.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param code path string true "Room type code"
// @Param file formData file true "Image file"
// @Success 200 {object} dto.RoomResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{code}/image [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadRoomImage")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("rejected room image")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.UploadImage(ctx, req, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload room image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("room image uploaded", map[string]any{"room_type": code, "user": user})

	response.WithJSON(w, http.StatusOK, room)
}
