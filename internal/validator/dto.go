package validator

// ===== AUTH REQUESTS =====

// LoginRequest authenticates by username, the canonical login key.
type LoginRequest struct {
	Username string `json:"username" validate:"required,account_username"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,password_strength"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// ActivateAccountRequest looks the account up by email because provisioned
// users receive their temporary credentials over email.
type ActivateAccountRequest struct {
	Email              string `json:"email" validate:"required,email"`
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,password_strength"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// ===== ACCOUNT REQUESTS =====

// UserCreateRequest is the credential part of every account creation flow.
type UserCreateRequest struct {
	Username        string  `json:"username" validate:"required,account_username"`
	Email           *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName       string  `json:"first_name" validate:"omitempty,max=150"`
	LastName        string  `json:"last_name" validate:"omitempty,max=150"`
	PhoneNumber     *string `json:"phone_number" validate:"omitempty,phone_number"`
	Password        string  `json:"password" validate:"required,password_strength"`
	PasswordConfirm string  `json:"password_confirm" validate:"required"`
}

type TeacherProfileRequest struct {
	DepartmentID   *uint   `json:"department_id"`
	Bio            *string `json:"bio" validate:"omitempty,max=2000"`
	Specialization *string `json:"specialization" validate:"omitempty,max=200"`
}

type StudentProfileRequest struct {
	CourseID       *uint   `json:"course_id"`
	StudentID      string  `json:"student_id" validate:"required,max=50"`
	EnrollmentDate *string `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
}

// RegisterUserRequest creates an active account plus the role profile
// matching the requested role, in a single write.
type RegisterUserRequest struct {
	UserCreateRequest
	Role    string                 `json:"role" validate:"required,oneof=teacher student"`
	Teacher *TeacherProfileRequest `json:"teacher"`
	Student *StudentProfileRequest `json:"student"`
}

type UserUpdateRequest struct {
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name" validate:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone_number"`
	IsActive    *bool   `json:"is_active"`
	IsStaff     *bool   `json:"is_staff"`
	IsAdmin     *bool   `json:"is_admin"`
	IsTeacher   *bool   `json:"is_teacher"`
	IsStudent   *bool   `json:"is_student"`
}

// ===== PROFILE REQUESTS =====

type TeacherCreateRequest struct {
	User UserCreateRequest `json:"user" validate:"required"`
	TeacherProfileRequest
}

type TeacherUpdateRequest struct {
	DepartmentID   *uint   `json:"department_id"`
	Bio            *string `json:"bio" validate:"omitempty,max=2000"`
	Specialization *string `json:"specialization" validate:"omitempty,max=200"`
}

// ProvisionUserRequest carries the identity fields for an admin-provisioned
// account. No password: provisioned accounts start with the default one.
type ProvisionUserRequest struct {
	Username    string  `json:"username" validate:"required,account_username"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	FirstName   string  `json:"first_name" validate:"omitempty,max=150"`
	LastName    string  `json:"last_name" validate:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone_number"`
}

type StudentCreateRequest struct {
	User           ProvisionUserRequest `json:"user" validate:"required"`
	CourseID       *uint                `json:"course_id"`
	StudentID      string               `json:"student_id" validate:"required,max=50"`
	EnrollmentDate *string              `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
}

type StudentUpdateRequest struct {
	CourseID       *uint   `json:"course_id"`
	StudentID      *string `json:"student_id" validate:"omitempty,max=50"`
	EnrollmentDate *string `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
}

// ===== REFERENCE DATA REQUESTS =====

type CourseCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CourseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type DepartmentCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=50"`
	IsActive    *bool   `json:"is_active"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type DepartmentUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=50"`
	IsActive    *bool   `json:"is_active"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type DayCreateRequest struct {
	Title string `json:"title" validate:"required,min=1,max=50"`
}

type DayUpdateRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=50"`
}

type RoomCreateRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=50"`
	Capacity *int   `json:"capacity" validate:"omitempty,min=1,max=1000"`
}

type RoomUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=50"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=1,max=1000"`
}

type TableTypeCreateRequest struct {
	Title string `json:"title" validate:"required,min=1,max=50"`
}

type TableTypeUpdateRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=50"`
}

type TableCreateRequest struct {
	CourseID  *uint   `json:"course_id"`
	TeacherID *uint   `json:"teacher_id"`
	RoomID    *uint   `json:"room_id"`
	DayID     *uint   `json:"day_id"`
	TypeID    *uint   `json:"type_id"`
	StartTime *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time" validate:"omitempty,datetime=15:04"`
}

type TableUpdateRequest = TableCreateRequest

type GroupStudentCreateRequest struct {
	TableID   *uint `json:"table_id"`
	StudentID *uint `json:"student_id"`
}

type GroupStudentUpdateRequest = GroupStudentCreateRequest
