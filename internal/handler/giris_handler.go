package handler

import "net/http"

// girisSayfasi oturumsuz kullanıcıların yönlendirildiği asgari giriş
// formudur. Başarılı girişte redirect parametresindeki adrese dönülür.
const girisSayfasi = `<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="utf-8">
<title>BPlanı - Giriş</title>
</head>
<body>
<h1>BPlanı</h1>
<form id="giris">
  <label>Kullanıcı adı <input name="kullaniciAdi" autocomplete="username" required></label>
  <label>Parola <input name="parola" type="password" autocomplete="current-password" required></label>
  <button type="submit">Giriş yap</button>
  <p id="hata" role="alert"></p>
</form>
<script>
document.getElementById("giris").addEventListener("submit", async function (e) {
  e.preventDefault();
  var form = new FormData(e.target);
  var yanit = await fetch("/api/auth/login", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({kullaniciAdi: form.get("kullaniciAdi"), parola: form.get("parola")})
  });
  if (yanit.ok) {
    var hedef = new URLSearchParams(location.search).get("redirect") || "/";
    location.assign(hedef);
    return;
  }
  var govde = await yanit.json();
  document.getElementById("hata").textContent = govde.error ? govde.error.message : "Giriş başarısız.";
});
</script>
</body>
</html>`

// GirisSayfasi giriş formunu döndürür.
// GET /giris
func GirisSayfasi(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(girisSayfasi))
}
