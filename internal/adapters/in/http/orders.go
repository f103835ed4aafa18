package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param(name))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrder
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), req.DealershipID, req.Description, req.Detail, req.Priority, req.Difficulty)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, fromAggregate(created))
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrder(view))
}

// DeleteOrder handles DELETE /api/v1/orders/:orderId.
func (s *Server) DeleteOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:orderId/complete.
func (s *Server) CompleteOrder(c echo.Context) error {
	return s.orderAction(c, func(orderID kernel.UUID) (*order.RepairOrder, error) {
		cmd, err := commands.NewCompleteOrderCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd)
	})
}

// PutOnHold handles POST /api/v1/orders/:orderId/hold.
func (s *Server) PutOnHold(c echo.Context) error {
	var req HoldRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}
	return s.orderAction(c, func(orderID kernel.UUID) (*order.RepairOrder, error) {
		cmd, err := commands.NewPutOnHoldCommand(orderID, req.Reason)
		if err != nil {
			return nil, err
		}
		return s.handlers.PutOnHold.Handle(c.Request().Context(), cmd)
	})
}

// ResumeOrder handles POST /api/v1/orders/:orderId/resume.
func (s *Server) ResumeOrder(c echo.Context) error {
	return s.orderAction(c, func(orderID kernel.UUID) (*order.RepairOrder, error) {
		cmd, err := commands.NewResumeOrderCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.handlers.ResumeOrder.Handle(c.Request().Context(), cmd)
	})
}

// ReturnToQueue handles POST /api/v1/orders/:orderId/return-to-queue.
func (s *Server) ReturnToQueue(c echo.Context) error {
	return s.orderAction(c, func(orderID kernel.UUID) (*order.RepairOrder, error) {
		cmd, err := commands.NewReturnToQueueCommand(orderID)
		if err != nil {
			return nil, err
		}
		return s.handlers.ReturnToQueue.Handle(c.Request().Context(), cmd)
	})
}

// UpdatePriority handles PUT /api/v1/orders/:orderId/priority.
func (s *Server) UpdatePriority(c echo.Context) error {
	var req PriorityRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}
	return s.orderAction(c, func(orderID kernel.UUID) (*order.RepairOrder, error) {
		cmd, err := commands.NewUpdatePriorityCommand(orderID, req.Priority)
		if err != nil {
			return nil, err
		}
		return s.handlers.UpdatePriority.Handle(c.Request().Context(), cmd)
	})
}

// UpdateDifficulty handles PUT /api/v1/orders/:orderId/difficulty.
func (s *Server) UpdateDifficulty(c echo.Context) error {
	var req DifficultyRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}
	return s.orderAction(c, func(orderID kernel.UUID) (*order.RepairOrder, error) {
		cmd, err := commands.NewUpdateDifficultyCommand(orderID, req.Difficulty)
		if err != nil {
			return nil, err
		}
		return s.handlers.UpdateDifficulty.Handle(c.Request().Context(), cmd)
	})
}

// ReorderOrder handles POST /api/v1/orders/:orderId/reorder.
func (s *Server) ReorderOrder(c echo.Context) error {
	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}
	return s.orderAction(c, func(orderID kernel.UUID) (*order.RepairOrder, error) {
		cmd, err := commands.NewReorderOrderCommand(orderID, req.BeforeOrderID)
		if err != nil {
			return nil, err
		}
		return s.handlers.ReorderOrder.Handle(c.Request().Context(), cmd)
	})
}

// ReassignOrder handles POST /api/v1/orders/:orderId/reassign.
func (s *Server) ReassignOrder(c echo.Context) error {
	var req ReassignRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, err)
	}
	return s.orderAction(c, func(orderID kernel.UUID) (*order.RepairOrder, error) {
		cmd, err := commands.NewReassignOrderCommand(orderID, req.TechnicianID)
		if err != nil {
			return nil, err
		}
		return s.handlers.ReassignOrder.Handle(c.Request().Context(), cmd)
	})
}

// GetDealershipQueue handles GET /api/v1/dealerships/:dealershipId/queue.
func (s *Server) GetDealershipQueue(c echo.Context) error {
	dealershipID, err := pathUUID(c, "dealershipId")
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetDealershipQueueQuery(dealershipID)
	if err != nil {
		return s.writeError(c, err)
	}

	views, err := s.handlers.GetDealershipQueue.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrders(views))
}

// RequestNextOrder handles POST /api/v1/technicians/:technicianId/next-order.
func (s *Server) RequestNextOrder(c echo.Context) error {
	technicianID, err := pathUUID(c, "technicianId")
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewRequestNextOrderCommand(technicianID)
	if err != nil {
		return s.writeError(c, err)
	}

	claimed, err := s.handlers.RequestNextOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, fromAggregate(claimed))
}

// GetTechnicianOrders handles GET /api/v1/technicians/:technicianId/orders.
func (s *Server) GetTechnicianOrders(c echo.Context) error {
	technicianID, err := pathUUID(c, "technicianId")
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetTechnicianOrdersQuery(technicianID)
	if err != nil {
		return s.writeError(c, err)
	}

	views, err := s.handlers.GetTechnicianOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, toOrders(views))
}

// orderAction runs a command on the order named by the path and renders the
// resulting order.
func (s *Server) orderAction(c echo.Context, run func(orderID kernel.UUID) (*order.RepairOrder, error)) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return s.writeError(c, err)
	}

	updated, err := run(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, fromAggregate(updated))
}
