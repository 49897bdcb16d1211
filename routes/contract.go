package routes

// Older mobile builds still call the reservation endpoints under
// /api/contracts. The aliases below keep them working; new clients should
// use /api/reservation.

import "github.com/kataras/iris/v12"

func CreateContract(ctx iris.Context) {
	CreateReservation(ctx)
}

func GetTenantContracts(ctx iris.Context) {
	GetTenantReservations(ctx)
}

func GetLandlordContracts(ctx iris.Context) {
	GetLandlordReservations(ctx)
}

func SetContractStatus(ctx iris.Context) {
	SetReservationStatus(ctx)
}

func SetContractPaymentStatus(ctx iris.Context) {
	SetPaymentStatus(ctx)
}

func CancelContract(ctx iris.Context) {
	CancelReservation(ctx)
}
