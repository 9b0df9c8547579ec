package dto

type SignupForm struct {
	Email    string `form:"email" binding:"required"`
	Username string `form:"username" binding:"required"`
	FullName string `form:"fullName"`
	Password string `form:"password" binding:"required"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type ForgotPasswordForm struct {
	Email string `form:"email" binding:"required"`
}

type VerifyOTPForm struct {
	OTP string `form:"otp" binding:"required"`
}

type ResetPasswordForm struct {
	Email       string `form:"email" binding:"required"`
	NewPassword string `form:"newPassword" binding:"required"`
}

type JoinMeetingForm struct {
	YourName    string `form:"yourName" binding:"required"`
	MeetingCode string `form:"meetingCode" binding:"required"`
}

type StartMeetingForm struct {
	MeetingName string `form:"meetingName" binding:"required"`
}
