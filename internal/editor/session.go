package editor

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"cedra_admin/internal/models"
)

var (
	ErrSubmitInFlight = errors.New("un envoi est déjà en cours pour cette session")
	ErrSessionClosed  = errors.New("la session d'édition est fermée")
)

// Remote - les deux opérations distantes dont la session a besoin.
// *api.Client les fournit.
type Remote interface {
	CreateProduct(ctx context.Context, contentType string, body io.Reader) (*models.Product, error)
	UpdateProduct(ctx context.Context, id, contentType string, body io.Reader) (*models.Product, error)
}

// State - cycle de vie d'une session d'édition :
// Creating|Editing → Submitting → fermée en cas de succès, retour à
// l'état précédent en cas d'échec (le brouillon est conservé pour
// permettre un nouvel essai sans ressaisie).
type State int

const (
	StateClosed State = iota
	StateCreating
	StateEditing
	StateSubmitting
)

// Session - une édition de produit du début à la fin. Les mutations du
// brouillon arrivent une à la fois (l'UI sérialise les événements); seul
// l'envoi est asynchrone, et il n'y en a jamais deux à la fois.
type Session struct {
	mu       sync.Mutex
	id       uuid.UUID
	state    State
	draft    *Draft
	remote   Remote
	inFlight bool

	// OnSuccess - prévient l'appelant qu'il doit rafraîchir sa liste.
	// Appelé hors verrou, après fermeture de la session.
	OnSuccess func(*models.Product)
}

// NewCreateSession - flux de création, brouillon vide
func NewCreateSession(remote Remote, policy Policy) *Session {
	return &Session{
		id:     uuid.New(),
		state:  StateCreating,
		draft:  New(policy),
		remote: remote,
	}
}

// NewEditSession - flux d'édition, brouillon hydraté depuis le produit
func NewEditSession(remote Remote, p *models.Product, policy Policy) *Session {
	return &Session{
		id:     uuid.New(),
		state:  StateEditing,
		draft:  Hydrate(p, policy),
		remote: remote,
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft - le brouillon de la session. Les éditeurs se pilotent dessus
// directement; la session ne s'occupe que de l'envoi et du cycle de vie.
func (s *Session) Draft() *Draft {
	return s.draft
}

// Submit - assemble le multipart et appelle la création ou la mise à jour
// selon la présence d'une identité. Au plus un envoi en vol par session;
// une réponse qui arrive après Close est ignorée plutôt qu'appliquée à un
// brouillon jeté.
func (s *Session) Submit(ctx context.Context) (*models.Product, error) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	previous := s.state
	s.state = StateSubmitting
	s.inFlight = true

	contentType, body, err := s.draft.BuildPayload()
	if err != nil {
		s.state = previous
		s.inFlight = false
		s.mu.Unlock()
		return nil, err
	}
	identity := s.draft.identity
	s.mu.Unlock()

	// Appel distant hors verrou : il peut durer
	var product *models.Product
	if identity != "" {
		product, err = s.remote.UpdateProduct(ctx, identity, contentType, body)
	} else {
		product, err = s.remote.CreateProduct(ctx, contentType, body)
	}

	s.mu.Lock()
	if s.state == StateClosed {
		// La session a été démontée pendant l'envoi (navigation) :
		// réponse périmée, on ne touche plus à rien
		s.mu.Unlock()
		log.Printf("⚠️ Réponse tardive ignorée pour la session %s", s.id)
		return nil, ErrSessionClosed
	}
	s.inFlight = false

	if err != nil {
		// Le brouillon est conservé : l'opérateur peut réessayer
		// sans ressaisir
		s.state = previous
		s.mu.Unlock()
		return nil, err
	}

	s.state = StateClosed
	s.draft.Discard()
	s.mu.Unlock()

	if s.OnSuccess != nil {
		s.OnSuccess(product)
	}
	return product, nil
}

// Close - annulation explicite ou démontage de l'écran. Libère les
// prévisualisations; un envoi encore en vol terminera dans le vide.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	s.draft.Discard()
}
