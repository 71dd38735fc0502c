// Package transaction prepares, authorizes and submits KILT extrinsics under a payer/signer
// authorization matrix.
package transaction

import (
	"errors"
	"fmt"
)

// Mode names who pays or who signs.
type Mode string

const (
	ModeSystem Mode = "system"
	ModeUser   Mode = "user"
)

// ErrUnsupportedAuthorization is returned for payer/signer combinations the service cannot honor.
var ErrUnsupportedAuthorization = errors.New("unsupported payment/signing combination")

// Authorization fixes the fee payer and the DID signing authority of a transaction.
// "User pays, system signs" has no value.
type Authorization int

const (
	// SystemPaysSystemSigns: the custodial account pays and the application DID authorizes.
	SystemPaysSystemSigns Authorization = iota + 1
	// SystemPaysUserSigns: the wallet DID-authorizes the call, the custodial account pays.
	SystemPaysUserSigns
	// UserPaysUserSigns: the wallet builds and signs the full extrinsic.
	UserPaysUserSigns
)

// ParseAuthorization maps the payment and signing modes to an Authorization.
func ParseAuthorization(payment, signing Mode) (Authorization, error) {
	switch {
	case payment == ModeSystem && signing == ModeSystem:
		return SystemPaysSystemSigns, nil
	case payment == ModeSystem && signing == ModeUser:
		return SystemPaysUserSigns, nil
	case payment == ModeUser && signing == ModeUser:
		return UserPaysUserSigns, nil
	default:
		return 0, fmt.Errorf("%w: paymentType=%q signingType=%q", ErrUnsupportedAuthorization, payment, signing)
	}
}

// PaymentType returns who pays.
func (a Authorization) PaymentType() Mode {
	switch a {
	case UserPaysUserSigns:
		return ModeUser
	default:
		return ModeSystem
	}
}

// SigningType returns who signs.
func (a Authorization) SigningType() Mode {
	switch a {
	case SystemPaysSystemSigns:
		return ModeSystem
	default:
		return ModeUser
	}
}

// UserSigns reports whether the wallet must sign before submission.
func (a Authorization) UserSigns() bool { return a.SigningType() == ModeUser }

func (a Authorization) String() string {
	switch a {
	case SystemPaysSystemSigns:
		return "system-pays/system-signs"
	case SystemPaysUserSigns:
		return "system-pays/user-signs"
	case UserPaysUserSigns:
		return "user-pays/user-signs"
	default:
		return fmt.Sprintf("Authorization(%d)", int(a))
	}
}
