package http

import (
	"net/http"
	"strconv"

	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/core/application/usecases/queries"
	"crowddelivery/internal/core/domain/model/chat"
	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/core/domain/model/report"
	"crowddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases exposed over REST.
type Handlers struct {
	CreateOrder   commands.CreateOrderCommandHandler
	AcceptOrder   commands.AcceptOrderCommandHandler
	PickUpOrder   commands.PickUpOrderCommandHandler
	DeliverOrder  commands.DeliverOrderCommandHandler
	TransferOrder commands.TransferOrderCommandHandler
	CancelOrder   commands.CancelOrderCommandHandler
	SendChat      commands.SendChatMessageCommandHandler
	RelayLocation commands.RelayLocationCommandHandler
	FileReport    commands.FileReportCommandHandler
	ReviewReport  commands.ReviewReportCommandHandler

	DispatchPool  queries.GetDispatchPoolQueryHandler
	GetOrder      queries.GetOrderQueryHandler
	ChatHistory   queries.GetChatHistoryQueryHandler
	RiderLocation queries.GetRiderLocationQueryHandler
	PriceRule     queries.GetPriceRuleQueryHandler
}

// Server translates HTTP requests into commands and queries. It never touches the
// store directly.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// GetDispatchPool handles GET /api/v1/orders/hall.
//
//	@Summary	List orders waiting for a rider
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}		order.Snapshot
//	@Failure	503	{object}	apierr.Error
//	@Router		/orders/hall [get]
func (s *Server) GetDispatchPool(ctx echo.Context) error {
	pool, err := s.h.DispatchPool.Handle(ctx.Request().Context(), queries.NewGetDispatchPoolQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pool)
}

// CreateOrder handles POST /api/v1/orders.
//
//	@Summary	Publish a new order to the dispatch pool
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		CreateOrderRequest	true	"order"
//	@Success	201		{object}	order.Snapshot
//	@Failure	400		{object}	apierr.Error
//	@Failure	409		{object}	apierr.Error
//	@Router		/orders [post]
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(req.params())
	if err != nil {
		return err
	}

	created, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, created.Snapshot())
}

// GetOrder handles GET /api/v1/orders/:id.
//
//	@Summary	Get an order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"order id"
//	@Success	200	{object}	order.Snapshot
//	@Failure	404	{object}	apierr.Error
//	@Router		/orders/{id} [get]
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	snapshot, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

// AcceptOrder handles POST /api/v1/orders/:id/accept. A lost race is not an error:
// the rider gets 200 with outcome "lost".
//
//	@Summary	Race to accept an order
//	@Tags		dispatch
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"order id"
//	@Param		rider	body		RiderActionRequest	true	"rider"
//	@Success	200		{object}	AcceptOrderResponse
//	@Failure	404		{object}	apierr.Error
//	@Router		/orders/{id}/accept [post]
func (s *Server) AcceptOrder(ctx echo.Context) error {
	id, req, err := riderAction(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptOrderCommand(id, req.RiderID)
	if err != nil {
		return err
	}

	result, err := s.h.AcceptOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, AcceptOrderResponse{Outcome: string(result.Outcome), Order: result.Order})
}

// PickUpOrder handles POST /api/v1/orders/:id/pickup.
//
//	@Summary	Confirm pickup within the accept window
//	@Tags		dispatch
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"order id"
//	@Param		rider	body		RiderActionRequest	true	"rider"
//	@Success	200		{object}	order.Snapshot
//	@Failure	409		{object}	apierr.Error
//	@Router		/orders/{id}/pickup [post]
func (s *Server) PickUpOrder(ctx echo.Context) error {
	id, req, err := riderAction(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewPickUpOrderCommand(id, req.RiderID)
	if err != nil {
		return err
	}
	return orderResult(ctx)(s.h.PickUpOrder.Handle(ctx.Request().Context(), cmd))
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
//
//	@Summary	Mark a picked up order delivered
//	@Tags		dispatch
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"order id"
//	@Param		rider	body		RiderActionRequest	true	"rider"
//	@Success	200		{object}	order.Snapshot
//	@Failure	409		{object}	apierr.Error
//	@Router		/orders/{id}/deliver [post]
func (s *Server) DeliverOrder(ctx echo.Context) error {
	id, req, err := riderAction(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeliverOrderCommand(id, req.RiderID)
	if err != nil {
		return err
	}
	return orderResult(ctx)(s.h.DeliverOrder.Handle(ctx.Request().Context(), cmd))
}

// TransferOrder handles POST /api/v1/orders/:id/transfer.
//
//	@Summary	Give an accepted order back to the pool
//	@Tags		dispatch
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"order id"
//	@Param		rider	body		RiderActionRequest	true	"rider"
//	@Success	200		{object}	order.Snapshot
//	@Failure	409		{object}	apierr.Error
//	@Router		/orders/{id}/transfer [post]
func (s *Server) TransferOrder(ctx echo.Context) error {
	id, req, err := riderAction(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransferOrderCommand(id, req.RiderID)
	if err != nil {
		return err
	}
	return orderResult(ctx)(s.h.TransferOrder.Handle(ctx.Request().Context(), cmd))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
//
//	@Summary	Cancel an order that no rider holds
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id			path		int					true	"order id"
//	@Param		merchant	body		CancelOrderRequest	true	"merchant"
//	@Success	200			{object}	order.Snapshot
//	@Failure	409			{object}	apierr.Error
//	@Router		/orders/{id}/cancel [post]
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req CancelOrderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(id, req.MerchantID)
	if err != nil {
		return err
	}
	return orderResult(ctx)(s.h.CancelOrder.Handle(ctx.Request().Context(), cmd))
}

// GetChatHistory handles GET /api/v1/orders/:id/chats.
//
//	@Summary	Chat history of an order, oldest first
//	@Tags		chat
//	@Produce	json
//	@Param		id	path		int	true	"order id"
//	@Success	200	{array}		chat.Snapshot
//	@Failure	404	{object}	apierr.Error
//	@Router		/orders/{id}/chats [get]
func (s *Server) GetChatHistory(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetChatHistoryQuery(id)
	if err != nil {
		return err
	}

	history, err := s.h.ChatHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, history)
}

// SendChatMessage handles POST /api/v1/orders/:id/chats.
//
//	@Summary	Post a chat message on an order
//	@Tags		chat
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"order id"
//	@Param		message	body		SendChatMessageRequest	true	"message"
//	@Success	201		{object}	chat.Snapshot
//	@Failure	404		{object}	apierr.Error
//	@Router		/orders/{id}/chats [post]
func (s *Server) SendChatMessage(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req SendChatMessageRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSendChatMessageCommand(id, req.SenderID, chat.Kind(req.Type), req.Message, req.URL)
	if err != nil {
		return err
	}

	msg, err := s.h.SendChat.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, msg)
}

// RelayLocation handles POST /api/v1/riders/location.
//
//	@Summary	Report the current rider position
//	@Tags		riders
//	@Accept		json
//	@Produce	json
//	@Param		position	body		RelayLocationRequest	true	"position"
//	@Success	200			{object}	ports.Position
//	@Failure	400			{object}	apierr.Error
//	@Router		/riders/location [post]
func (s *Server) RelayLocation(ctx echo.Context) error {
	var req RelayLocationRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRelayLocationCommand(req.UserID, req.Lat, req.Lng)
	if err != nil {
		return err
	}

	position, err := s.h.RelayLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, position)
}

// GetRiderLocation handles GET /api/v1/riders/:id/location.
//
//	@Summary	Last known rider position
//	@Tags		riders
//	@Produce	json
//	@Param		id	path		int	true	"rider id"
//	@Success	200	{object}	ports.Position
//	@Failure	404	{object}	apierr.Error
//	@Router		/riders/{id}/location [get]
func (s *Server) GetRiderLocation(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetRiderLocationQuery(id)
	if err != nil {
		return err
	}

	position, err := s.h.RiderLocation.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, position)
}

// FileReport handles POST /api/v1/reports.
//
//	@Summary	File an incident report on a held order
//	@Tags		reports
//	@Accept		json
//	@Produce	json
//	@Param		report	body		FileReportRequest	true	"report"
//	@Success	201		{object}	report.Snapshot
//	@Failure	409		{object}	apierr.Error
//	@Router		/reports [post]
func (s *Server) FileReport(ctx echo.Context) error {
	var req FileReportRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewFileReportCommand(req.params())
	if err != nil {
		return err
	}

	filed, err := s.h.FileReport.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, filed)
}

// ReviewReport handles POST /api/v1/reports/:id/review.
//
//	@Summary	Approve or reject a pending report
//	@Tags		reports
//	@Accept		json
//	@Produce	json
//	@Param		id			path		int					true	"report id"
//	@Param		decision	body		ReviewReportRequest	true	"decision"
//	@Success	200			{object}	report.Snapshot
//	@Failure	409			{object}	apierr.Error
//	@Router		/reports/{id}/review [post]
func (s *Server) ReviewReport(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var req ReviewReportRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewReviewReportCommand(id, report.Status(req.Decision))
	if err != nil {
		return err
	}

	reviewed, err := s.h.ReviewReport.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, reviewed)
}

// GetPriceRule handles GET /api/v1/config/price.
//
//	@Summary	Tariff used to price new orders
//	@Tags		config
//	@Produce	json
//	@Success	200	{object}	services.PriceRule
//	@Router		/config/price [get]
func (s *Server) GetPriceRule(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.h.PriceRule.Handle())
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return ctx.Validate(req)
}

func pathID(ctx echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func riderAction(ctx echo.Context) (int64, RiderActionRequest, error) {
	var req RiderActionRequest
	id, err := pathID(ctx, "id")
	if err != nil {
		return 0, req, err
	}
	if err := bindAndValidate(ctx, &req); err != nil {
		return 0, req, err
	}
	return id, req, nil
}

func orderResult(ctx echo.Context) func(*order.Order, error) error {
	return func(o *order.Order, err error) error {
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, o.Snapshot())
	}
}
