package list_rooms

import (
	"net/http"

	"github.com/smartlab/SLB-BookingService/internal/api/handlers"
	"github.com/smartlab/SLB-BookingService/internal/domain"
)

// RoomResponse HTTP response model
type RoomResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	EquipmentList string `json:"equipmentList"`
}

// RoomListResponse список помещений
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

type Handler struct {
	roomRepo RoomRepository
	logger   Logger
}

func NewHandler(roomRepo RoomRepository, logger Logger) *Handler {
	return &Handler{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// Handle GET /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomRepo.List(r.Context())
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomainRooms(rooms))
}

func fromDomainRooms(rooms []*domain.Room) *RoomListResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, RoomResponse{
			ID:            room.ID,
			Name:          room.Name,
			EquipmentList: room.EquipmentList,
		})
	}
	return &RoomListResponse{Rooms: out}
}
