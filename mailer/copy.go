package mailer

// OTPFlavor selects the copy used for a verification OTP email. The flavors
// mirror the lifecycle moments that hand out one-time codes.
type OTPFlavor string

const (
	// OTPSignIn is a code requested to complete a sign in.
	OTPSignIn OTPFlavor = "sign-in"
	// OTPEmailVerification is a code that proves ownership of an address.
	OTPEmailVerification OTPFlavor = "email-verification"
	// OTPForgetPassword is a code that starts a password reset.
	OTPForgetPassword OTPFlavor = "forget-password"
)

type otpCopy struct {
	Subject string
	Title   string
	Icon    string
	Message string
}

// otpCopyTable is closed over the known flavors; anything else falls back to
// genericOTPCopy.
var otpCopyTable = map[OTPFlavor]otpCopy{
	OTPSignIn: {
		Subject: "Your Sign In OTP Code",
		Title:   "Sign In Verification",
		Icon:    "🔐",
		Message: "You requested to sign in to your account. Please use the code below to complete your sign in:",
	},
	OTPEmailVerification: {
		Subject: "Verify Your Email Address",
		Title:   "Email Verification",
		Icon:    "✉️",
		Message: "Thank you for signing up! Please verify your email address using the code below:",
	},
	OTPForgetPassword: {
		Subject: "Reset Your Password",
		Title:   "Password Reset",
		Icon:    "🔑",
		Message: "You requested to reset your password. Please use the code below to proceed:",
	},
}

var genericOTPCopy = otpCopy{
	Subject: "Your Verification Code",
	Title:   "Verification Code",
	Icon:    "🔒",
	Message: "Please use the verification code below:",
}

func copyForFlavor(flavor OTPFlavor) otpCopy {
	if c, ok := otpCopyTable[flavor]; ok {
		return c
	}
	return genericOTPCopy
}
