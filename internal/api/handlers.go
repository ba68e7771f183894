package api

import (
	"context"
	"strings"

	availabilityv1 "staybook/internal/api/gen/availability/v1"
	"staybook/internal/domain"
	"staybook/internal/models"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type AvailabilityService struct {
	availabilityv1.UnimplementedAvailabilityServiceServer
	availability domain.AvailabilityService
	groups       domain.GroupAllocator
}

func NewAvailabilityService(availability domain.AvailabilityService, groups domain.GroupAllocator) *AvailabilityService {
	return &AvailabilityService{availability: availability, groups: groups}
}

func (s *AvailabilityService) CheckAvailability(ctx context.Context, req *availabilityv1.CheckAvailabilityRequest) (
	*availabilityv1.CheckAvailabilityResponse, error) {
	if req.GetUnitId() <= 0 {
		return nil, status.Error(codes.InvalidArgument, "unit_id is required")
	}
	checkIn, checkOut, err := parseStay(req.GetCheckIn(), req.GetCheckOut())
	if err != nil {
		return nil, err
	}
	guests := int(req.GetGuests())
	if guests == 0 {
		guests = 1
	}

	res, err := s.availability.Quote(ctx, models.AvailabilityQuery{
		UnitID:   req.GetUnitId(),
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
		Children: int(req.GetChildren()),
	})
	if err != nil {
		return nil, grpcError(err)
	}

	out := &availabilityv1.CheckAvailabilityResponse{
		UnitId:    res.UnitID,
		CheckIn:   res.CheckIn.String(),
		CheckOut:  res.CheckOut.String(),
		Available: res.Available,
		Reason:    res.Reason,
		MinStay:   int32(res.MinStay),
		Nights:    int32(res.Nights),
		Currency:  res.Currency,
	}
	if res.Price != nil {
		out.Price = *res.Price
	}
	return out, nil
}

func (s *AvailabilityService) QuoteGroup(ctx context.Context, req *availabilityv1.QuoteGroupRequest) (
	*availabilityv1.QuoteGroupResponse, error) {
	checkIn, checkOut, err := parseStay(req.GetCheckIn(), req.GetCheckOut())
	if err != nil {
		return nil, err
	}
	option, err := s.groups.Allocate(ctx, checkIn, checkOut, int(req.GetGuests()))
	if err != nil {
		return nil, grpcError(err)
	}
	if option == nil {
		return &availabilityv1.QuoteGroupResponse{}, nil
	}

	allocations := make([]*availabilityv1.GroupAllocation, 0, len(option.Allocations))
	for _, a := range option.Allocations {
		allocations = append(allocations, &availabilityv1.GroupAllocation{
			UnitId:         a.UnitID,
			UnitName:       a.UnitName,
			Capacity:       int32(a.Capacity),
			AssignedGuests: int32(a.AssignedGuests),
			Price:          a.Price,
		})
	}
	return &availabilityv1.QuoteGroupResponse{Option: &availabilityv1.GroupOption{
		CheckIn:     option.CheckIn.String(),
		CheckOut:    option.CheckOut.String(),
		Guests:      int32(option.Guests),
		Allocations: allocations,
		TotalPrice:  option.TotalPrice,
		Currency:    option.Currency,
	}}, nil
}

func (s *AvailabilityService) ListUnits(ctx context.Context, _ *availabilityv1.ListUnitsRequest) (
	*availabilityv1.ListUnitsResponse, error) {
	units, err := s.availability.ListUnits(ctx)
	if err != nil {
		return nil, grpcError(err)
	}

	out := make([]*availabilityv1.Unit, 0, len(units))
	for _, u := range units {
		out = append(out, &availabilityv1.Unit{
			Id:          u.ID,
			Name:        u.Name,
			Description: u.Description,
			Capacity:    int32(u.Capacity),
			BasePrice:   u.BasePrice,
			Currency:    u.Currency,
			PricingMode: string(u.PricingMode),
			MinStay:     int32(u.MinStay),
		})
	}
	return &availabilityv1.ListUnitsResponse{Units: out}, nil
}

func parseStay(rawIn, rawOut string) (models.Day, models.Day, error) {
	if strings.TrimSpace(rawIn) == "" || strings.TrimSpace(rawOut) == "" {
		return 0, 0, status.Error(codes.InvalidArgument, "check_in and check_out are required")
	}
	checkIn, err := models.ParseDay(rawIn)
	if err != nil {
		return 0, 0, status.Error(codes.InvalidArgument, err.Error())
	}
	checkOut, err := models.ParseDay(rawOut)
	if err != nil {
		return 0, 0, status.Error(codes.InvalidArgument, err.Error())
	}
	return checkIn, checkOut, nil
}

var _ availabilityv1.AvailabilityServiceServer = (*AvailabilityService)(nil)
