package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vsip/visit-sync/internal/booking"
	"github.com/vsip/visit-sync/internal/model"
	"github.com/vsip/visit-sync/internal/queue"
	"github.com/vsip/visit-sync/internal/repository"
	queue_publisher "github.com/vsip/visit-sync/internal/service"
)

// Comments recorded on the adjustment ledger when the caller supplies
// none of their own.
const (
	createdComment   = "Created by visit scheduling service"
	cancelledComment = "Cancelled by visit scheduling service"
)

// VisitHandler groups the repositories required to create, update and
// cancel visits. Each mutation runs inside a single transaction so slot
// provisioning, order bookkeeping and visitor writes commit or roll
// back together. JWT authentication and role validation are performed
// by middleware before these handlers run.
type VisitHandler struct {
	BookingRepo   *repository.BookingRepo   // active-booking resolution
	ReferenceRepo *repository.ReferenceRepo // code validation and seed lookups
	PrisonRepo    *repository.PrisonRepo    // prison resolution
	PersonRepo    *repository.PersonRepo    // visitor person resolution
	VisitRepo     *repository.VisitRepo     // visit rows; also supplies the DB handle
	VisitorRepo   *repository.VisitorRepo   // visit visitor rows
	OrderRepo     *repository.OrderRepo     // visit orders and order visitors
	BalanceRepo   *repository.BalanceRepo   // balance snapshots and the adjustment ledger
	ScheduleRepo  *repository.ScheduleRepo  // day/time/slot/room provisioning
	SequenceRepo  *repository.SequenceRepo  // event id and order number allocation
}

// NewVisitHandler constructs a VisitHandler. All dependencies must be
// non-nil.
func NewVisitHandler(
	bookingRepo *repository.BookingRepo,
	referenceRepo *repository.ReferenceRepo,
	prisonRepo *repository.PrisonRepo,
	personRepo *repository.PersonRepo,
	visitRepo *repository.VisitRepo,
	visitorRepo *repository.VisitorRepo,
	orderRepo *repository.OrderRepo,
	balanceRepo *repository.BalanceRepo,
	scheduleRepo *repository.ScheduleRepo,
	sequenceRepo *repository.SequenceRepo,
) *VisitHandler {
	if bookingRepo == nil || referenceRepo == nil || prisonRepo == nil || personRepo == nil ||
		visitRepo == nil || visitorRepo == nil || orderRepo == nil || balanceRepo == nil ||
		scheduleRepo == nil || sequenceRepo == nil {
		panic("nil repository passed to NewVisitHandler")
	}
	return &VisitHandler{
		BookingRepo:   bookingRepo,
		ReferenceRepo: referenceRepo,
		PrisonRepo:    prisonRepo,
		PersonRepo:    personRepo,
		VisitRepo:     visitRepo,
		VisitorRepo:   visitorRepo,
		OrderRepo:     orderRepo,
		BalanceRepo:   balanceRepo,
		ScheduleRepo:  scheduleRepo,
		SequenceRepo:  sequenceRepo,
	}
}

type createVisitRequest struct {
	OffenderNo       string   `json:"offender_no"`
	StartTime        string   `json:"start_time"` // RFC3339
	EndTime          string   `json:"end_time"`   // RFC3339
	PrisonID         string   `json:"prison_id"`
	VisitorPersonIDs []uint64 `json:"visitor_person_ids"`
	VisitType        string   `json:"visit_type"`
	IssueDate        string   `json:"issue_date"` // "2006-01-02"; defaults to today
	Comment          string   `json:"comment"`
	Room             string   `json:"room"`        // caller's room label, informational
	OpenClosed       string   `json:"open_closed"` // "OPEN" or "CLOSED"
}

type updateVisitRequest struct {
	OffenderNo       string   `json:"offender_no"`
	StartTime        string   `json:"start_time"` // RFC3339
	EndTime          string   `json:"end_time"`   // RFC3339
	VisitorPersonIDs []uint64 `json:"visitor_person_ids"`
	OpenClosed       string   `json:"open_closed"` // "OPEN" or "CLOSED"
}

type cancelVisitRequest struct {
	OffenderNo    string `json:"offender_no"`
	OutcomeReason string `json:"outcome_reason"`
}

// CreateVisit handles POST /v1/visits. It validates the booking, visit
// type, prison and visitors, provisions the scheduling slot, consumes a
// visit order when the booking has a balance, and writes the visit with
// its status-tracking visitor row and one row per requested person —
// all in one transaction. On success it returns 201 with the visit id.
func (h *VisitHandler) CreateVisit(c echo.Context) error {
	var req createVisitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.OffenderNo == "" || req.PrisonID == "" || req.VisitType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "offender_no, prison_id and visit_type are required"})
	}
	start, end, errMsg := parseVisitTimes(req.StartTime, req.EndTime)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}
	closed, ok := parseOpenClosed(req.OpenClosed)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "open_closed must be OPEN or CLOSED"})
	}
	issueDate, err := parseIssueDate(req.IssueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issue_date must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	activeBooking, err := h.BookingRepo.GetActiveByOffenderNo(ctx, req.OffenderNo)
	if err != nil {
		return writeError(c, err, "offender has no active booking")
	}
	if _, err := h.ReferenceRepo.GetCode(ctx, model.DomainVisitType, req.VisitType); err != nil {
		return writeError(c, err, "")
	}
	if _, err := h.PrisonRepo.GetByID(ctx, req.PrisonID); err != nil {
		return writeError(c, err, "")
	}
	for _, pid := range req.VisitorPersonIDs {
		if _, err := h.PersonRepo.GetByID(ctx, pid); err != nil {
			return writeError(c, err, "")
		}
	}
	// Seed codes must resolve before any row is written.
	if _, err := h.ReferenceRepo.ScheduledStatus(ctx); err != nil {
		return writeError(c, err, "")
	}

	tx, err := h.VisitRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	slot, room, err := h.ScheduleRepo.ResolveSlotTx(ctx, tx, req.PrisonID, start, end, closed)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to provision scheduling slot"})
	}

	order, err := h.allocateOrderTx(ctx, tx, activeBooking.ID, issueDate, req.Comment)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to allocate visit order"})
	}

	visit := &model.Visit{
		BookingID:  activeBooking.ID,
		PrisonID:   req.PrisonID,
		VisitDate:  dateOf(start),
		StartTime:  start,
		EndTime:    end,
		VisitType:  req.VisitType,
		Status:     model.StatusScheduled,
		RoomID:     room.ID,
		SlotID:     slot.ID,
		SourceRoom: req.Room,
		Comment:    req.Comment,
	}
	if order != nil {
		visit.OrderID = &order.ID
	}
	if err := h.VisitRepo.CreateTx(ctx, tx, visit); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create visit"})
	}

	eventID, err := h.SequenceRepo.NextEventIDTx(ctx, tx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to allocate event id"})
	}
	if err := h.VisitorRepo.CreateStatusRowTx(ctx, tx, visit.ID, eventID, model.StatusScheduled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create visit status row"})
	}
	if err := h.VisitorRepo.AddPersonsTx(ctx, tx, visit.ID, req.VisitorPersonIDs, model.StatusScheduled); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create visitors"})
	}

	if order != nil {
		orderVisitors := make([]model.VisitOrderVisitor, 0, len(req.VisitorPersonIDs))
		for i, pid := range req.VisitorPersonIDs {
			orderVisitors = append(orderVisitors, model.VisitOrderVisitor{
				OrderID:     order.ID,
				PersonID:    pid,
				GroupLeader: i == 0,
			})
		}
		if err := h.OrderRepo.ReplaceVisitorsTx(ctx, tx, order.ID, orderVisitors); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order visitors"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	event := queue.VisitBookedEvent{
		VisitID:    visit.ID,
		OffenderNo: req.OffenderNo,
		BookingID:  activeBooking.ID,
		PrisonID:   req.PrisonID,
		VisitType:  req.VisitType,
		StartsAt:   start.UTC().Format(time.RFC3339),
		EndsAt:     end.UTC().Format(time.RFC3339),
		Room:       room.Description,
		VisitorIDs: req.VisitorPersonIDs,
		BookedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if order != nil {
		event.OrderNumber = order.OrderNumber
		event.OrderType = order.OrderType
	}
	// Event emission is best effort; the booking is already committed.
	_ = queue_publisher.PublishVisitBooked(ctx, event)

	return c.JSON(http.StatusCreated, echo.Map{"visit_id": visit.ID})
}

// allocateOrderTx reads the booking's balance snapshot and, when one
// exists, creates the visit order and its issue adjustment. A booking
// without a balance row gets no order and the visit proceeds anyway.
func (h *VisitHandler) allocateOrderTx(ctx context.Context, tx *sql.Tx, bookingID uint64, issueDate time.Time, comment string) (*model.VisitOrder, error) {
	bal, err := h.BalanceRepo.GetByBookingTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	alloc := booking.DecideAllocation(bal)
	if alloc == nil {
		return nil, nil
	}

	orderNumber, err := h.SequenceRepo.NextOrderNumberTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	if comment == "" {
		comment = createdComment
	}
	order := &model.VisitOrder{
		OrderNumber: orderNumber,
		BookingID:   bookingID,
		OrderType:   alloc.OrderType,
		Status:      model.StatusScheduled,
		IssueDate:   issueDate,
		ExpiryDate:  booking.OrderExpiry(issueDate),
		Comment:     comment,
	}
	if err := h.OrderRepo.CreateTx(ctx, tx, order); err != nil {
		return nil, err
	}

	adj := &model.BalanceAdjustment{
		BookingID:   bookingID,
		OrderID:     &order.ID,
		AdjustDate:  issueDate,
		ReasonCode:  alloc.ReasonCode,
		VODelta:     alloc.VODelta,
		PVODelta:    alloc.PVODelta,
		PreviousVO:  alloc.PreviousVO,
		PreviousPVO: alloc.PreviousPVO,
		Comment:     comment,
	}
	if err := h.BalanceRepo.AppendAdjustmentTx(ctx, tx, adj); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateVisit handles PUT /v1/visits/:id. It re-resolves the scheduling
// slot for the new timing and openness, rewrites the visit's timing and
// room, reconciles the visitor set against the requested person ids and
// rebuilds the order's visitor list. The balance ledger is never
// touched by updates.
func (h *VisitHandler) UpdateVisit(c echo.Context) error {
	visitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || visitID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visit id"})
	}
	var req updateVisitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.OffenderNo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "offender_no is required"})
	}
	start, end, errMsg := parseVisitTimes(req.StartTime, req.EndTime)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}
	closed, ok := parseOpenClosed(req.OpenClosed)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "open_closed must be OPEN or CLOSED"})
	}

	ctx := c.Request().Context()
	activeBooking, err := h.BookingRepo.GetActiveByOffenderNo(ctx, req.OffenderNo)
	if err != nil {
		return writeError(c, err, "offender has no active booking")
	}
	for _, pid := range req.VisitorPersonIDs {
		if _, err := h.PersonRepo.GetByID(ctx, pid); err != nil {
			return writeError(c, err, "")
		}
	}

	tx, err := h.VisitRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	visit, err := h.VisitRepo.GetByIDTx(ctx, tx, visitID)
	if err != nil {
		return writeError(c, err, "visit not found")
	}
	if visit.BookingID != activeBooking.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "visit does not belong to the offender's active booking"})
	}

	slot, room, err := h.ScheduleRepo.ResolveSlotTx(ctx, tx, visit.PrisonID, start, end, closed)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to provision scheduling slot"})
	}
	if err := h.VisitRepo.UpdateScheduleTx(ctx, tx, visit.ID, dateOf(start), start, end, room.ID, slot.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update visit"})
	}

	visitors, err := h.VisitorRepo.ListByVisitTx(ctx, tx, visit.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load visitors"})
	}
	toAdd, toRemove := booking.VisitorDelta(visitors, req.VisitorPersonIDs)
	if err := h.VisitorRepo.DeleteTx(ctx, tx, toRemove); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove visitors"})
	}
	if len(toAdd) > 0 {
		statusRow, err := h.VisitorRepo.StatusRowTx(ctx, tx, visit.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load visit status row"})
		}
		// New visitors inherit the event status the visit currently holds.
		if err := h.VisitorRepo.AddPersonsTx(ctx, tx, visit.ID, toAdd, statusRow.EventStatus); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add visitors"})
		}
	}

	// The order's visitor list is rebuilt on every update, changed or not.
	if visit.OrderID != nil {
		current, err := h.VisitorRepo.ListByVisitTx(ctx, tx, visit.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load visitors"})
		}
		rows := booking.OrderVisitors(*visit.OrderID, current)
		if err := h.OrderRepo.ReplaceVisitorsTx(ctx, tx, *visit.OrderID, rows); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to rebuild order visitors"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// CancelVisit handles PUT /v1/visits/:id/cancel. It enforces the single
// SCH -> CANC transition, marks every visitor row absent/cancelled with
// the supplied reason, and — when the visit holds an order — cancels
// the order, moves its expiry to today and appends the compensating
// adjustment. Any failure aborts the whole operation.
func (h *VisitHandler) CancelVisit(c echo.Context) error {
	visitID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || visitID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid visit id"})
	}
	var req cancelVisitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.OffenderNo == "" || req.OutcomeReason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "offender_no and outcome_reason are required"})
	}

	ctx := c.Request().Context()
	activeBooking, err := h.BookingRepo.GetActiveByOffenderNo(ctx, req.OffenderNo)
	if err != nil {
		return writeError(c, err, "offender has no active booking")
	}
	if _, err := h.ReferenceRepo.GetCode(ctx, model.DomainOutcomeRsn, req.OutcomeReason); err != nil {
		return writeError(c, err, "")
	}
	if _, err := h.ReferenceRepo.CancelledStatus(ctx); err != nil {
		return writeError(c, err, "")
	}
	absent, err := h.ReferenceRepo.AbsentOutcome(ctx)
	if err != nil {
		return writeError(c, err, "")
	}

	tx, err := h.VisitRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	visit, err := h.VisitRepo.GetByIDTx(ctx, tx, visitID)
	if err != nil {
		return writeError(c, err, "visit not found")
	}
	if visit.BookingID != activeBooking.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "visit does not belong to the offender's active booking"})
	}
	if err := booking.CancelGuard(visit.Status); err != nil {
		return writeError(c, err, "")
	}

	if err := h.VisitRepo.CancelTx(ctx, tx, visit.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel visit"})
	}
	if err := h.VisitorRepo.CancelAllTx(ctx, tx, visit.ID, absent.Code, req.OutcomeReason); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel visitors"})
	}

	if visit.OrderID != nil {
		if err := h.reverseOrderTx(ctx, tx, visit); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reverse visit order"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	_ = queue_publisher.PublishVisitCancelled(ctx, queue.VisitCancelledEvent{
		VisitID:       visit.ID,
		OffenderNo:    req.OffenderNo,
		BookingID:     visit.BookingID,
		PrisonID:      visit.PrisonID,
		OutcomeReason: req.OutcomeReason,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.NoContent(http.StatusNoContent)
}

// reverseOrderTx cancels the order attached to a visit: status CANC,
// expiry moved to today, and one compensating +1 adjustment on the
// counter the order was drawn from, carrying the issue adjustment's
// previous-value snapshot.
func (h *VisitHandler) reverseOrderTx(ctx context.Context, tx *sql.Tx, visit *model.Visit) error {
	order, err := h.OrderRepo.GetByIDTx(ctx, tx, *visit.OrderID)
	if err != nil {
		return err
	}
	today := dateOf(time.Now().UTC())
	if err := h.OrderRepo.CancelTx(ctx, tx, order.ID, today); err != nil {
		return err
	}

	issueAdj, err := h.BalanceRepo.IssueAdjustmentTx(ctx, tx, order.ID)
	if err != nil {
		return err
	}
	rev := booking.ReverseAllocation(order.OrderType, issueAdj)
	adj := &model.BalanceAdjustment{
		BookingID:   visit.BookingID,
		OrderID:     &order.ID,
		AdjustDate:  today,
		ReasonCode:  rev.ReasonCode,
		VODelta:     rev.VODelta,
		PVODelta:    rev.PVODelta,
		PreviousVO:  rev.PreviousVO,
		PreviousPVO: rev.PreviousPVO,
		Comment:     cancelledComment,
	}
	return h.BalanceRepo.AppendAdjustmentTx(ctx, tx, adj)
}

// parseVisitTimes parses and sanity-checks the RFC3339 start/end pair.
func parseVisitTimes(startStr, endStr string) (start, end time.Time, errMsg string) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, "start_time must be RFC3339"
	}
	end, err = time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, "end_time must be RFC3339"
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, "end_time must be after start_time"
	}
	return start, end, ""
}

// parseOpenClosed maps the caller's openness flag to the closed bool
// used for room provisioning. An empty value means an open visit.
func parseOpenClosed(v string) (closed bool, ok bool) {
	switch v {
	case "", "OPEN":
		return false, true
	case "CLOSED":
		return true, true
	}
	return false, false
}

// parseIssueDate parses the order issue date, defaulting to today.
func parseIssueDate(v string) (time.Time, error) {
	if v == "" {
		return dateOf(time.Now().UTC()), nil
	}
	return time.Parse("2006-01-02", v)
}

// dateOf truncates a timestamp to its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
