// cedra-admin - outil d'administration de la boutique en ligne de commande.
// Les écrans de l'ancien panneau web existent en sous-commandes :
//
//	cedra-admin login -email ... -password ...
//	cedra-admin dashboard
//	cedra-admin categories [add|edit|rm ...]
//	cedra-admin products [-category ID] [-color rouge] [-tags a,b]
//	cedra-admin product add|edit|rm ...
//	cedra-admin orders
//	cedra-admin users
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cedra_admin/internal/api"
	"cedra_admin/internal/cache"
	"cedra_admin/internal/config"
	"cedra_admin/internal/editor"
	"cedra_admin/internal/models"
)

func main() {
	config.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	client := api.New(config.APIBaseURL(), config.HTTPTimeout())
	if token, err := api.LoadToken(config.TokenFile()); err == nil && token != "" {
		client.SetToken(token)
	}

	store := cache.Open(config.RedisHost(), config.RedisPassword())
	defer store.Close()

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, client, os.Args[2:])
	case "dashboard":
		err = runDashboard(ctx, client)
	case "categories":
		err = runCategories(ctx, client, store, os.Args[2:])
	case "products":
		err = runProducts(ctx, client, store, os.Args[2:])
	case "product":
		err = runProduct(ctx, client, os.Args[2:])
	case "orders":
		err = runOrders(ctx, client)
	case "users":
		err = runUsers(ctx, client)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: cedra-admin <login|dashboard|categories|products|product|orders|users> [options]")
}

func runLogin(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", os.Getenv("ADMIN_EMAIL"), "Email admin")
	password := fs.String("password", os.Getenv("ADMIN_PASSWORD"), "Mot de passe admin")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("email et mot de passe requis (-email/-password ou ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	if err := client.Login(ctx, *email, *password); err != nil {
		return err
	}
	if client.Token() != "" {
		if err := api.SaveToken(config.TokenFile(), client.Token()); err != nil {
			log.Printf("⚠️ Token non sauvegardé: %v", err)
		}
	}
	return nil
}

func runDashboard(ctx context.Context, client *api.Client) error {
	counts := client.DashboardCounts(ctx)
	fmt.Printf("Produits:     %s\n", countCell(counts.Products))
	fmt.Printf("Utilisateurs: %s\n", countCell(counts.Users))
	fmt.Printf("Commandes:    %s\n", countCell(counts.Orders))
	return nil
}

func countCell(n int) string {
	if n < 0 {
		return "indisponible"
	}
	return fmt.Sprintf("%d", n)
}

func runCategories(ctx context.Context, client *api.Client, store cache.Store, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			fs := flag.NewFlagSet("categories add", flag.ExitOnError)
			name := fs.String("name", "", "Nom de la catégorie")
			image := fs.String("image", "", "Chemin de l'image (optionnel)")
			fs.Parse(args[1:])
			cat, err := client.CreateCategory(ctx, *name, *image)
			if err != nil {
				return err
			}
			log.Printf("✅ Catégorie créée: %s (%s)", cat.Name, cat.ID)
			return nil
		case "edit":
			fs := flag.NewFlagSet("categories edit", flag.ExitOnError)
			id := fs.String("id", "", "ID de la catégorie")
			name := fs.String("name", "", "Nouveau nom")
			image := fs.String("image", "", "Nouvelle image (optionnel)")
			fs.Parse(args[1:])
			if *id == "" {
				return fmt.Errorf("-id requis")
			}
			cat, err := client.UpdateCategory(ctx, *id, *name, *image)
			if err != nil {
				return err
			}
			log.Printf("✅ Catégorie mise à jour: %s", cat.Name)
			return nil
		case "rm":
			fs := flag.NewFlagSet("categories rm", flag.ExitOnError)
			id := fs.String("id", "", "ID de la catégorie")
			fs.Parse(args[1:])
			if *id == "" {
				return fmt.Errorf("-id requis")
			}
			if err := client.DeleteCategory(ctx, *id); err != nil {
				return err
			}
			log.Println("✅ Catégorie supprimée")
			return nil
		}
	}

	cats, err := cache.Categories(ctx, store, client.GetAllCategories)
	if err != nil {
		return err
	}
	for _, cat := range cats {
		fmt.Printf("%s\t%s\n", cat.ID, cat.Name)
	}
	return nil
}

func runProducts(ctx context.Context, client *api.Client, store cache.Store, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "", "Filtrer par ID de catégorie")
	color := fs.String("color", "", "Filtrer par couleur de variante")
	tags := fs.String("tags", "", "Filtrer par tags (séparés par des virgules)")
	fs.Parse(args)

	filter := api.Filter{Category: *category, Color: *color, Tags: models.SplitTags(*tags)}

	var products []models.Product
	var err error
	if filter.Category == "" && filter.Color == "" && len(filter.Tags) == 0 {
		products, err = cache.Products(ctx, store, func(c context.Context) ([]models.Product, error) {
			return client.GetAllProducts(c, api.Filter{})
		})
	} else {
		products, err = client.GetAllProducts(ctx, filter)
	}
	if err != nil {
		return err
	}

	uploads := config.UploadsBaseURL()
	for _, p := range products {
		image := ""
		if len(p.Images) > 0 {
			image = models.ImageURL(uploads, p.Images[0])
		}
		fmt.Printf("%s\t%s\t%s\t[%s]\t%d variante(s)\t%s\n",
			p.ID, p.Name, p.Category.Name, strings.Join(p.Tags, ", "), len(p.Variants), image)
	}
	return nil
}

func runProduct(ctx context.Context, client *api.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("sous-commande requise: add|edit|rm")
	}

	switch args[0] {
	case "add":
		return runProductForm(ctx, client, nil, args[1:])
	case "edit":
		var id string
		// -id est extrait ici, le reste est parsé par le formulaire
		rest := splitIDArg(args[1:], &id)
		if id == "" {
			return fmt.Errorf("-id requis")
		}
		p, err := client.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		return runProductForm(ctx, client, p, rest)
	case "rm":
		fs := flag.NewFlagSet("product rm", flag.ExitOnError)
		id := fs.String("id", "", "ID du produit")
		fs.Parse(args[1:])
		if *id == "" {
			return fmt.Errorf("-id requis")
		}
		if err := client.DeleteProduct(ctx, *id); err != nil {
			return err
		}
		log.Println("✅ Produit supprimé")
		return nil
	}
	return fmt.Errorf("sous-commande inconnue: %s", args[0])
}

// splitIDArg - extrait -id de la ligne et rend le reste des arguments
func splitIDArg(args []string, id *string) []string {
	var rest []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-id" && i+1 < len(args) {
			*id = args[i+1]
			i++
			continue
		}
		if v, ok := strings.CutPrefix(args[i], "-id="); ok {
			*id = v
			continue
		}
		rest = append(rest, args[i])
	}
	return rest
}

// runProductForm - une session d'éditeur complète pilotée par les flags.
// Les flags répétables -tag/-variant/-image alimentent les éditeurs dans
// l'ordre de la ligne de commande, comme les clics dans l'ancien modal.
func runProductForm(ctx context.Context, client *api.Client, existing *models.Product, args []string) error {
	fs := flag.NewFlagSet("product form", flag.ExitOnError)
	name := fs.String("name", "", "Nom")
	category := fs.String("category", "", "ID de la catégorie")
	price := fs.String("price", "", "Prix")
	description := fs.String("description", "", "Description")
	tagsRaw := fs.String("tags", "", "Tags en une fois, séparés par des virgules")
	var tags, variants, images, rmExisting multiFlag
	fs.Var(&tags, "tag", "Ajouter un tag (répétable)")
	fs.Var(&variants, "variant", "Variante couleur:prix:stock (répétable)")
	fs.Var(&images, "image", "Fichier image à uploader (répétable)")
	fs.Var(&rmExisting, "rm-image", "Référence d'image existante à retirer (répétable)")
	fs.Parse(args)

	var session *editor.Session
	if existing != nil {
		session = editor.NewEditSession(client, existing, editor.Policy{})
	} else {
		session = editor.NewCreateSession(client, editor.Policy{})
	}
	defer session.Close()

	draft := session.Draft()
	if *name != "" {
		draft.SetField("name", *name)
	}
	if *category != "" {
		draft.SetField("category", *category)
	}
	if *price != "" {
		draft.SetField("price", *price)
	}
	if *description != "" {
		draft.SetField("description", *description)
	}
	if *tagsRaw != "" {
		draft.SetTagsRaw(*tagsRaw)
	}
	for _, t := range tags {
		draft.SetTagInput(t)
		draft.AddTag()
	}
	for _, v := range variants {
		parts := strings.SplitN(v, ":", 3)
		draft.AddVariant()
		i := len(draft.Variants) - 1
		if len(parts) > 0 {
			draft.UpdateVariant(i, "color", parts[0])
		}
		if len(parts) > 1 {
			draft.UpdateVariant(i, "price", parts[1])
		}
		if len(parts) > 2 {
			draft.UpdateVariant(i, "stock", parts[2])
		}
	}
	for _, ref := range rmExisting {
		idx := indexOf(draft.ExistingImages, ref)
		if idx < 0 {
			return fmt.Errorf("image existante inconnue: %s", ref)
		}
		draft.RemoveExistingImage(idx)
	}
	if len(images) > 0 {
		if _, err := draft.AddNewImages(images...); err != nil {
			return err
		}
	}

	product, err := session.Submit(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Printf("✅ Produit mis à jour: %s (%s)", product.Name, product.ID)
	} else {
		log.Printf("✅ Produit créé: %s (%s)", product.Name, product.ID)
	}
	return nil
}

func indexOf(refs []string, ref string) int {
	for i, r := range refs {
		if r == ref {
			return i
		}
	}
	return -1
}

type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func runOrders(ctx context.Context, client *api.Client) error {
	orders, details, err := client.OrdersWithProducts(ctx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		email := "N/A"
		if len(o.Users) > 0 {
			email = o.Users[0].Email
		}
		fmt.Printf("%s\t%s\t%.2f\t%s\t%s\t%s\n",
			o.ID, email, o.TotalAmount, o.PaymentMethod, o.PaymentStatus, o.OrderStatus)
		for _, line := range o.Products {
			name := line.ProductID
			if p, ok := details[line.ProductID]; ok {
				name = p.Name
			}
			fmt.Printf("    %d x %s\n", line.Quantity, name)
		}
	}
	return nil
}

func runUsers(ctx context.Context, client *api.Client) error {
	users, err := client.GetAllUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	return nil
}
