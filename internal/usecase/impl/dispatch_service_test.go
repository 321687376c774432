package impl

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hailer/config"
	"hailer/internal/domain/entity"
	domainerrors "hailer/internal/domain/errors"
	"hailer/internal/domain/service"
	"hailer/internal/usecase"
)

func newDispatchService(store *fakeStore, notifier service.NotificationService) usecase.DispatchUsecase {
	return NewDispatchService(DispatchServiceParams{
		TxManager:  store,
		DriverRepo: store.DriverRepo(),
		OrderRepo:  store.OrderRepo(),
		Notifier:   notifier,
		Config: &config.Config{
			Matching: &config.MatchingConfig{MaxDistance: config.DefaultMatchDistance},
		},
		Logger: newDiscardLogger(),
	})
}

func addActiveDriver(store *fakeStore, name string, class entity.CarClass, coords entity.Coordinates) *entity.Participant {
	return addDriver(store, name, "password123", &entity.DriverProfile{
		CarClass:    class,
		Coordinates: coords,
		Active:      true,
	})
}

func TestDispatchService_FindEligibleDrivers(t *testing.T) {
	store := newFakeStore()
	near := addActiveDriver(store, "near", entity.CarClassEconomy, entity.Coordinates{Lat: 10.0, Lon: 10.0})
	addActiveDriver(store, "far", entity.CarClassEconomy, entity.Coordinates{Lat: 5000000000, Lon: 5000000000})
	svc := newDispatchService(store, nil)

	drivers, err := svc.FindEligibleDrivers(context.Background(), &usecase.FindDriversInput{
		Destination: "10.1,10.1",
		CarClass:    entity.CarClassEconomy,
	})

	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, near.ID, drivers[0].ID)
}

func TestDispatchService_FindEligibleDrivers_ThresholdIsStrict(t *testing.T) {
	store := newFakeStore()
	// Distance to the origin destination is exactly the threshold for one
	// driver and one unit below it for the other.
	addActiveDriver(store, "at-threshold", entity.CarClassComfort,
		entity.Coordinates{Lat: 0, Lon: config.DefaultMatchDistance})
	below := addActiveDriver(store, "below-threshold", entity.CarClassComfort,
		entity.Coordinates{Lat: 0, Lon: config.DefaultMatchDistance - 1})
	svc := newDispatchService(store, nil)

	drivers, err := svc.FindEligibleDrivers(context.Background(), &usecase.FindDriversInput{
		Destination: "0,0",
		CarClass:    entity.CarClassComfort,
	})

	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, below.ID, drivers[0].ID)
}

func TestDispatchService_FindEligibleDrivers_FiltersClassAndActivity(t *testing.T) {
	store := newFakeStore()
	addActiveDriver(store, "wrong-class", entity.CarClassBusiness, entity.Coordinates{Lat: 10, Lon: 10})
	addDriver(store, "inactive", "password123", &entity.DriverProfile{
		CarClass:    entity.CarClassEconomy,
		Coordinates: entity.Coordinates{Lat: 10, Lon: 10},
		Active:      false,
	})
	match := addActiveDriver(store, "match", entity.CarClassEconomy, entity.Coordinates{Lat: 10, Lon: 10})
	svc := newDispatchService(store, nil)

	drivers, err := svc.FindEligibleDrivers(context.Background(), &usecase.FindDriversInput{
		Destination: "10,10",
		CarClass:    entity.CarClassEconomy,
	})

	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, match.ID, drivers[0].ID)
}

func TestDispatchService_FindEligibleDrivers_PreservesDiscoveryOrder(t *testing.T) {
	store := newFakeStore()
	first := addActiveDriver(store, "first", entity.CarClassEconomy, entity.Coordinates{Lat: 1, Lon: 1})
	second := addActiveDriver(store, "second", entity.CarClassEconomy, entity.Coordinates{Lat: 2, Lon: 2})
	third := addActiveDriver(store, "third", entity.CarClassEconomy, entity.Coordinates{Lat: 3, Lon: 3})
	svc := newDispatchService(store, nil)

	drivers, err := svc.FindEligibleDrivers(context.Background(), &usecase.FindDriversInput{
		Destination: "0,0",
		CarClass:    entity.CarClassEconomy,
	})

	require.NoError(t, err)
	require.Len(t, drivers, 3)
	assert.Equal(t, []int64{first.ID, second.ID, third.ID},
		[]int64{drivers[0].ID, drivers[1].ID, drivers[2].ID})
}

func TestDispatchService_FindEligibleDrivers_Rejections(t *testing.T) {
	store := newFakeStore()
	svc := newDispatchService(store, nil)

	tests := []struct {
		name    string
		input   *usecase.FindDriversInput
		wantErr error
	}{
		{
			name:    "unknown car class",
			input:   &usecase.FindDriversInput{Destination: "10,10", CarClass: "LUXURY"},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "destination without delimiter",
			input:   &usecase.FindDriversInput{Destination: "1010", CarClass: entity.CarClassEconomy},
			wantErr: domainerrors.ErrMalformedCoordinate,
		},
		{
			name:    "destination with non-numeric component",
			input:   &usecase.FindDriversInput{Destination: "10,north", CarClass: entity.CarClassEconomy},
			wantErr: domainerrors.ErrMalformedCoordinate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FindEligibleDrivers(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDispatchService_RequestDriver_Success(t *testing.T) {
	store := newFakeStore()
	driver := addActiveDriver(store, "driver", entity.CarClassEconomy, entity.Coordinates{Lat: 10, Lon: 10})
	rider := addRider(store, "rider", "password123")
	order := store.addOrder(&entity.Order{
		RiderID:     rider.ID,
		Destination: entity.Coordinates{Lat: 10.1, Lon: 10.1},
	})
	svc := newDispatchService(store, nil)

	err := svc.RequestDriver(context.Background(), &usecase.RequestDriverInput{
		DriverID: driver.ID,
		RiderID:  rider.ID,
	})

	require.NoError(t, err)
	stored := store.order(order.ID)
	assert.Equal(t, entity.OrderRequested, stored.Status)
	assert.True(t, stored.DriverRequested)
	require.NotNil(t, stored.DriverID)
	assert.Equal(t, driver.ID, *stored.DriverID)
}

func TestDispatchService_RequestDriver_NoOpenOrder(t *testing.T) {
	store := newFakeStore()
	driver := addActiveDriver(store, "driver", entity.CarClassEconomy, entity.Coordinates{Lat: 10, Lon: 10})
	rider := addRider(store, "rider", "password123")
	svc := newDispatchService(store, nil)

	err := svc.RequestDriver(context.Background(), &usecase.RequestDriverInput{
		DriverID: driver.ID,
		RiderID:  rider.ID,
	})

	assert.ErrorIs(t, err, domainerrors.ErrNoOpenOrder)
}

func TestDispatchService_RequestDriver_UnknownDriver(t *testing.T) {
	store := newFakeStore()
	rider := addRider(store, "rider", "password123")
	store.addOrder(&entity.Order{RiderID: rider.ID})
	svc := newDispatchService(store, nil)

	err := svc.RequestDriver(context.Background(), &usecase.RequestDriverInput{
		DriverID: 9999,
		RiderID:  rider.ID,
	})

	assert.ErrorIs(t, err, domainerrors.ErrDriverNotFound)
}

func TestDispatchService_RequestDriver_SecondRequestLoses(t *testing.T) {
	store := newFakeStore()
	first := addActiveDriver(store, "first", entity.CarClassEconomy, entity.Coordinates{Lat: 10, Lon: 10})
	second := addActiveDriver(store, "second", entity.CarClassEconomy, entity.Coordinates{Lat: 11, Lon: 11})
	rider := addRider(store, "rider", "password123")
	order := store.addOrder(&entity.Order{RiderID: rider.ID})
	svc := newDispatchService(store, nil)

	require.NoError(t, svc.RequestDriver(context.Background(), &usecase.RequestDriverInput{
		DriverID: first.ID,
		RiderID:  rider.ID,
	}))

	err := svc.RequestDriver(context.Background(), &usecase.RequestDriverInput{
		DriverID: second.ID,
		RiderID:  rider.ID,
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderState)
	assert.Equal(t, first.ID, *store.order(order.ID).DriverID)
}

func TestDispatchService_RequestDriver_PushesNotification(t *testing.T) {
	store := newFakeStore()
	driver := addDriver(store, "driver", "password123", &entity.DriverProfile{
		CarClass:    entity.CarClassEconomy,
		Coordinates: entity.Coordinates{Lat: 10, Lon: 10},
		Active:      true,
		DeviceToken: "fcm-token",
	})
	rider := addRider(store, "rider", "password123")
	order := store.addOrder(&entity.Order{RiderID: rider.ID})
	notifier := &fakeNotifier{}
	svc := newDispatchService(store, notifier)

	err := svc.RequestDriver(context.Background(), &usecase.RequestDriverInput{
		DriverID: driver.ID,
		RiderID:  rider.ID,
	})

	require.NoError(t, err)
	require.Len(t, notifier.sends, 1)
	assert.Equal(t, "fcm-token", notifier.sends[0].token)
	assert.Equal(t, strconv.FormatInt(order.ID, 10), notifier.sends[0].data["orderId"])
}

func TestDispatchService_DriverRequested(t *testing.T) {
	store := newFakeStore()
	rider := addRider(store, "rider", "password123")
	order := store.addOrder(&entity.Order{RiderID: rider.ID})
	svc := newDispatchService(store, nil)

	requested, err := svc.DriverRequested(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, requested)

	driver := addActiveDriver(store, "driver", entity.CarClassEconomy, entity.Coordinates{Lat: 10, Lon: 10})
	require.NoError(t, svc.RequestDriver(context.Background(), &usecase.RequestDriverInput{
		DriverID: driver.ID,
		RiderID:  rider.ID,
	}))

	requested, err = svc.DriverRequested(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, requested)

	_, err = svc.DriverRequested(context.Background(), 9999)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
