package store

// Op names a store operation for busy tracking and logging.
type Op int

const (
	OpSignup Op = iota
	OpLogin
	OpLogout
	OpAuthCheck

	OpFetchAll
	OpFetchUser
	OpFetchAssigned
	OpCreate
	OpAddComment
	OpUpdateStatus
	OpUpdatePriority
	OpAssign
	OpDelete
	OpRemove

	opCount
)

var opNames = [opCount]string{
	OpSignup:         "signup",
	OpLogin:          "login",
	OpLogout:         "logout",
	OpAuthCheck:      "auth_check",
	OpFetchAll:       "fetch_all_tickets",
	OpFetchUser:      "fetch_user_tickets",
	OpFetchAssigned:  "fetch_assigned_tickets",
	OpCreate:         "create_ticket",
	OpAddComment:     "add_comment",
	OpUpdateStatus:   "update_status",
	OpUpdatePriority: "update_priority",
	OpAssign:         "assign_ticket",
	OpDelete:         "delete_ticket",
	OpRemove:         "remove_ticket",
}

func (o Op) String() string {
	if o < 0 || o >= opCount {
		return "unknown"
	}
	return opNames[o]
}

// Category groups ticket operations under the coarse busy flags shown to
// users.
type Category int

const (
	CategoryNone Category = iota
	CategoryLoading
	CategoryCreating
	CategoryUpdating
	CategoryDeleting
	CategoryFetching
)

func (o Op) Category() Category {
	switch o {
	case OpFetchAll, OpFetchUser:
		return CategoryFetching
	case OpFetchAssigned, OpAddComment, OpAssign:
		return CategoryLoading
	case OpCreate:
		return CategoryCreating
	case OpUpdateStatus, OpUpdatePriority:
		return CategoryUpdating
	case OpDelete, OpRemove:
		return CategoryDeleting
	}
	return CategoryNone
}

// busy counts in-flight calls per operation. Two overlapping calls of the
// same operation keep it busy until both finish. Not safe for concurrent
// use on its own; the owning store's mutex guards it.
type busy struct {
	n [opCount]int
}

func (b *busy) begin(op Op) { b.n[op]++ }

func (b *busy) end(op Op) {
	if b.n[op] > 0 {
		b.n[op]--
	}
}

func (b *busy) active(op Op) bool { return b.n[op] > 0 }

func (b *busy) category(c Category) bool {
	for op := Op(0); op < opCount; op++ {
		if b.n[op] > 0 && op.Category() == c {
			return true
		}
	}
	return false
}
