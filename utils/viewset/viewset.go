package viewset

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/facet-unt/departamentos-api/utils/response"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// Serializer is the write side of a resource: a decoded request body that
// validates itself against the database and copies its fields onto a record.
type Serializer[M any] interface {
	// Load fills the input from the stored record before an update binds
	// the request over it.
	Load(m *M)
	// Validate checks the input; id is 0 on create.
	Validate(db *gorm.DB, id uint) validation.Errors
	// Apply copies the validated input onto m.
	Apply(m *M)
}

// Input constrains PT to be *T implementing Serializer[M].
type Input[M any, T any] interface {
	*T
	Serializer[M]
}

// Binder is implemented by inputs that decode the request themselves (multipart).
type Binder interface {
	Bind(c *fiber.Ctx) error
}

// Preparer is implemented by inputs with side effects that must wait for
// validation, such as uploading an attachment.
type Preparer interface {
	Prepare(ctx context.Context) error
}

// Committer is implemented by inputs that clean up after the record is saved.
type Committer interface {
	Commit(ctx context.Context)
}

// Rollbacker undoes Prepare when the record could not be written.
type Rollbacker interface {
	Rollback(ctx context.Context)
}

// ReadOnlyInput is the input of resources that never write. Mount skips the
// write routes when Config.ReadOnly is set, so its methods are never reached.
type ReadOnlyInput[M any] struct{}

func (ReadOnlyInput[M]) Load(*M) {}

func (ReadOnlyInput[M]) Validate(*gorm.DB, uint) validation.Errors { return nil }

func (ReadOnlyInput[M]) Apply(*M) {}

// Action is an extra route mounted next to the CRUD routes.
type Action struct {
	Name    string // URL segment, e.g. "list_jefes_persona"
	Method  string
	Detail  bool // mounted under /:id/
	Summary string
	Handler fiber.Handler
}

// Config declares one resource.
type Config[M any, T any] struct {
	Name            string // model name shown in docs and errors
	ReadOnly        bool
	Permission      Permission
	Preload         []string
	Ordering        []string // default ordering, "-field" for descending
	OrderingFields  []string
	Filters         []string // filterset params, "field" or "field__lookup" or "rel__field__lookup"
	Relations       map[string]Relation
	SearchFields    []string
	ActiveByDefault bool
	PageSize        int

	// Read renders a record for list and retrieve. Viewsets that are only
	// paginated, never mounted, leave it nil.
	Read func(m *M) any
	// Write renders the record returned by create and update, Read when nil.
	Write func(m *M) any
	// NewInput builds an empty input, new(T) when nil.
	NewInput func() *T
	// OnDestroy runs before the record is deleted.
	OnDestroy func(ctx context.Context, m *M) error

	Actions []Action
}

// ModelViewSet serves list, create, retrieve, update, partial_update and destroy
// for one gorm model.
type ModelViewSet[M any, T any, PT Input[M, T]] struct {
	db  *gorm.DB
	cfg Config[M, T]
}

// New builds a viewset over db.
func New[M any, T any, PT Input[M, T]](db *gorm.DB, cfg Config[M, T]) *ModelViewSet[M, T, PT] {
	if cfg.Permission == nil {
		cfg.Permission = IsAuthenticatedOrReadOnly
	}
	if cfg.Write == nil {
		cfg.Write = cfg.Read
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if len(cfg.Ordering) == 0 {
		cfg.Ordering = []string{"id"}
	}
	if cfg.Name == "" {
		cfg.Name = reflect.TypeOf((*M)(nil)).Elem().Name()
	}
	return &ModelViewSet[M, T, PT]{db: db, cfg: cfg}
}

// Mount registers the routes on r. Extra actions go first so that
// "list_jefes_persona" is not captured by "/:id". before runs ahead of
// every handler and only on routes that matched.
func (v *ModelViewSet[M, T, PT]) Mount(r fiber.Router, before ...fiber.Handler) {
	chain := func(h fiber.Handler) []fiber.Handler {
		return append(append(make([]fiber.Handler, 0, len(before)+1), before...), h)
	}

	for _, a := range v.cfg.Actions {
		path := "/" + a.Name
		if a.Detail {
			path = "/:id/" + a.Name
		}
		r.Add(a.Method, path, chain(v.guard(a.Handler))...)
	}

	r.Get("/", chain(v.List)...)
	r.Get("/:id", chain(v.Retrieve)...)
	if v.cfg.ReadOnly {
		r.Post("/", response.MethodNotAllowed)
		for _, method := range []string{fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete} {
			r.Add(method, "/:id", response.MethodNotAllowed)
		}
		return
	}
	r.Post("/", chain(v.Create)...)
	r.Put("/:id", chain(v.Update)...)
	r.Patch("/:id", chain(v.PartialUpdate)...)
	r.Delete("/:id", chain(v.Destroy)...)
}

// DB returns the database handle the viewset queries.
func (v *ModelViewSet[M, T, PT]) DB() *gorm.DB {
	return v.db
}

func (v *ModelViewSet[M, T, PT]) guard(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !v.cfg.Permission(c) {
			return deny(c)
		}
		return h(c)
	}
}

// List handles GET /<prefix>/
func (v *ModelViewSet[M, T, PT]) List(c *fiber.Ctx) error {
	return v.ListWith(v.cfg.Read)(c)
}

// ListWith serves the filtered, paginated list rendered with read and
// narrowed by the extra scopes.
func (v *ModelViewSet[M, T, PT]) ListWith(read func(m *M) any, scopes ...func(*gorm.DB) *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !v.cfg.Permission(c) {
			return deny(c)
		}

		rows, page, err := v.Paginate(c, scopes...)
		var errs validation.Errors
		switch {
		case errors.As(err, &errs):
			return response.ValidationError(c, errs)
		case errors.Is(err, ErrInvalidPage):
			return response.NotFound(c, "Invalid page.")
		case err != nil:
			return err
		}

		results := make([]any, 0, len(rows))
		for i := range rows {
			results = append(results, read(&rows[i]))
		}
		return response.Paginated(c, page.Body(c, results))
	}
}

// Paginate runs the list query for c: declared filters, search, ordering and
// the page window. Bad filter values come back as validation.Errors and an
// out of range page as ErrInvalidPage.
func (v *ModelViewSet[M, T, PT]) Paginate(c *fiber.Ctx, scopes ...func(*gorm.DB) *gorm.DB) ([]M, Page, error) {
	scope, errs := v.filterScope(c)
	if len(errs) > 0 {
		return nil, Page{}, errs
	}

	db := v.db.WithContext(c.UserContext())
	all := append([]func(*gorm.DB) *gorm.DB{scope}, scopes...)

	var total int64
	if err := db.Model(new(M)).Scopes(all...).Count(&total).Error; err != nil {
		return nil, Page{}, fmt.Errorf("failed to count %s: %w", v.cfg.Name, err)
	}

	page, err := NewPage(c, total, v.cfg.PageSize)
	if err != nil {
		return nil, Page{}, err
	}

	var rows []M
	q := v.preload(db.Scopes(append(all, v.orderScope(c))...)).Limit(page.Size).Offset(page.Offset())
	if err := q.Find(&rows).Error; err != nil {
		return nil, Page{}, fmt.Errorf("failed to list %s: %w", v.cfg.Name, err)
	}
	return rows, page, nil
}

// Retrieve handles GET /<prefix>/:id/
func (v *ModelViewSet[M, T, PT]) Retrieve(c *fiber.Ctx) error {
	if !v.cfg.Permission(c) {
		return deny(c)
	}

	m, err := v.Object(c, true)
	if err != nil {
		return v.objectError(c, err)
	}
	return response.Success(c, v.cfg.Read(m))
}

// Create handles POST /<prefix>/
func (v *ModelViewSet[M, T, PT]) Create(c *fiber.Ctx) error {
	if !v.cfg.Permission(c) {
		return deny(c)
	}

	in := v.newInput()
	if err := v.bind(c, in); err != nil {
		return response.ParseError(c, err)
	}
	if errs := v.validate(in, 0); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	if err := prepare(c.UserContext(), in); err != nil {
		return err
	}

	var m M
	in.Apply(&m)
	db := v.db.WithContext(c.UserContext())
	if err := db.Omit(clause.Associations).Create(&m).Error; err != nil {
		rollback(c.UserContext(), in)
		return fmt.Errorf("failed to create %s: %w", v.cfg.Name, err)
	}
	commit(c.UserContext(), in)

	saved, err := v.reload(c.UserContext(), &m)
	if err != nil {
		return err
	}
	return response.Created(c, v.cfg.Write(saved))
}

// Update handles PUT /<prefix>/:id/
func (v *ModelViewSet[M, T, PT]) Update(c *fiber.Ctx) error {
	return v.update(c, false)
}

// PartialUpdate handles PATCH /<prefix>/:id/
func (v *ModelViewSet[M, T, PT]) PartialUpdate(c *fiber.Ctx) error {
	return v.update(c, true)
}

func (v *ModelViewSet[M, T, PT]) update(c *fiber.Ctx, partial bool) error {
	if !v.cfg.Permission(c) {
		return deny(c)
	}

	m, err := v.Object(c, false)
	if err != nil {
		return v.objectError(c, err)
	}
	id, _ := parseID(c)

	// PUT must carry every required field. Optional fields it leaves out
	// keep their stored values, as with PATCH.
	var missing validation.Errors
	if !partial {
		sent := v.newInput()
		if err := v.bind(c, sent); err != nil {
			return response.ParseError(c, err)
		}
		missing = validation.Default().Required(sent)
	}

	in := v.newInput()
	in.Load(m)
	if err := v.bind(c, in); err != nil {
		return response.ParseError(c, err)
	}
	errs := v.validate(in, id)
	for field, msgs := range missing {
		if _, ok := errs[field]; !ok {
			errs[field] = msgs
		}
	}
	if len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	if err := prepare(c.UserContext(), in); err != nil {
		return err
	}

	in.Apply(m)
	db := v.db.WithContext(c.UserContext())
	if err := db.Omit(clause.Associations).Save(m).Error; err != nil {
		rollback(c.UserContext(), in)
		return fmt.Errorf("failed to update %s: %w", v.cfg.Name, err)
	}
	commit(c.UserContext(), in)

	saved, err := v.reload(c.UserContext(), m)
	if err != nil {
		return err
	}
	return response.Success(c, v.cfg.Write(saved))
}

// Destroy handles DELETE /<prefix>/:id/
func (v *ModelViewSet[M, T, PT]) Destroy(c *fiber.Ctx) error {
	if !v.cfg.Permission(c) {
		return deny(c)
	}

	m, err := v.Object(c, false)
	if err != nil {
		return v.objectError(c, err)
	}

	if v.cfg.OnDestroy != nil {
		if err := v.cfg.OnDestroy(c.UserContext(), m); err != nil {
			return err
		}
	}

	if err := v.db.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", v.cfg.Name, err)
	}
	return response.NoContent(c)
}

// Object loads the record named by the :id param.
func (v *ModelViewSet[M, T, PT]) Object(c *fiber.Ctx, preload bool) (*M, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	db := v.db.WithContext(c.UserContext())
	if preload {
		db = v.preload(db)
	}

	var m M
	if err := db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (v *ModelViewSet[M, T, PT]) objectError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, "")
	}
	return fmt.Errorf("failed to load %s: %w", v.cfg.Name, err)
}

// reload reads m back by primary key with its relations.
func (v *ModelViewSet[M, T, PT]) reload(ctx context.Context, m *M) (*M, error) {
	var fresh M
	pk, err := primaryKey(v.db, m)
	if err != nil {
		return nil, err
	}
	if err := v.preload(v.db.WithContext(ctx)).First(&fresh, pk).Error; err != nil {
		return nil, fmt.Errorf("failed to reload %s: %w", v.cfg.Name, err)
	}
	return &fresh, nil
}

func (v *ModelViewSet[M, T, PT]) preload(db *gorm.DB) *gorm.DB {
	for _, p := range v.cfg.Preload {
		db = db.Preload(p)
	}
	return db
}

func (v *ModelViewSet[M, T, PT]) newInput() PT {
	if v.cfg.NewInput != nil {
		return PT(v.cfg.NewInput())
	}
	return PT(new(T))
}

func (v *ModelViewSet[M, T, PT]) bind(c *fiber.Ctx, in PT) error {
	if b, ok := any(in).(Binder); ok {
		return b.Bind(c)
	}
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(in)
}

func (v *ModelViewSet[M, T, PT]) validate(in PT, id uint) validation.Errors {
	errs := validation.Errors{}
	errs.Merge(validation.Default().Check(in))
	errs.Merge(in.Validate(v.db, id))
	return errs
}

func prepare(ctx context.Context, in any) error {
	if p, ok := in.(Preparer); ok {
		return p.Prepare(ctx)
	}
	return nil
}

func commit(ctx context.Context, in any) {
	if cm, ok := in.(Committer); ok {
		cm.Commit(ctx)
	}
}

func rollback(ctx context.Context, in any) {
	if rb, ok := in.(Rollbacker); ok {
		rb.Rollback(ctx)
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func primaryKey(db *gorm.DB, m any) (any, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(m); err != nil {
		return nil, err
	}
	field := stmt.Schema.PrioritizedPrimaryField
	if field == nil {
		return nil, fmt.Errorf("%s has no primary key", stmt.Schema.Name)
	}
	value, _ := field.ValueOf(context.Background(), reflect.ValueOf(m).Elem())
	return value, nil
}
